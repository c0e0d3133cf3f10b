package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"account-analyze-go/internal/logger"
	"account-analyze-go/internal/model"
)

const (
	defaultInstagramBaseURL = "https://www.instagram.com"
	webProfileInfoPath      = "/api/v1/users/web_profile_info/"
	instagramUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	maxBodyBytes            = 4 << 20
)

// errNotJSON API返回了非JSON内容（通常是登录页），需要回退到HTML页面
var errNotJSON = errors.New("response is not json")

// InstagramClient Instagram公开profile获取器
type InstagramClient struct {
	baseURL    string
	appID      string
	sessionID  string
	parser     *ProfilePageParser
	httpClient *http.Client
}

// InstagramOption 客户端选项
type InstagramOption func(*InstagramClient)

// WithBaseURL 覆盖Instagram地址（测试用）
func WithBaseURL(baseURL string) InstagramOption {
	return func(c *InstagramClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithSessionID 使用登录会话cookie
func WithSessionID(sessionID string) InstagramOption {
	return func(c *InstagramClient) {
		c.sessionID = sessionID
	}
}

// WithHTTPClient 自定义HTTP客户端
func WithHTTPClient(client *http.Client) InstagramOption {
	return func(c *InstagramClient) {
		c.httpClient = client
	}
}

// NewInstagramClient 创建Instagram客户端
func NewInstagramClient(appID string, timeout time.Duration, opts ...InstagramOption) *InstagramClient {
	c := &InstagramClient{
		baseURL: defaultInstagramBaseURL,
		appID:   appID,
		parser:  NewProfilePageParser(),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// webProfileInfoResponse web_profile_info 接口响应
type webProfileInfoResponse struct {
	Data struct {
		User *instagramUser `json:"user"`
	} `json:"data"`
	Status string `json:"status"`
}

type instagramUser struct {
	Username                 string     `json:"username"`
	ProfilePicURL            *string    `json:"profile_pic_url"`
	EdgeFollowedBy           *edgeCount `json:"edge_followed_by"`
	EdgeFollow               *edgeCount `json:"edge_follow"`
	EdgeOwnerToTimelineMedia *edgeCount `json:"edge_owner_to_timeline_media"`
}

type edgeCount struct {
	Count *int `json:"count"`
}

// FetchProfile 获取账号属性：先调JSON接口，被拦截时回退解析profile页面
func (c *InstagramClient) FetchProfile(ctx context.Context, username string) (*model.ProfileAttributes, error) {
	attrs, err := c.fetchWebProfileInfo(ctx, username)
	if err == nil {
		return attrs, nil
	}
	if errors.Is(err, ErrProfileNotFound) || errors.Is(err, model.ErrInvalidAttributes) || ctx.Err() != nil {
		return nil, err
	}

	logger.Debug("web_profile_info unavailable, falling back to profile page",
		zap.String("username", username), zap.Error(err))

	return c.fetchProfilePage(ctx, username)
}

func (c *InstagramClient) fetchWebProfileInfo(ctx context.Context, username string) (*model.ProfileAttributes, error) {
	params := url.Values{}
	params.Set("username", username)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, webProfileInfoPath, params.Encode())

	body, contentType, err := c.get(ctx, reqURL, "application/json")
	if err != nil {
		return nil, err
	}
	if !strings.Contains(contentType, "json") {
		return nil, errNotJSON
	}

	var resp webProfileInfoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if resp.Data.User == nil {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, username)
	}

	return resp.Data.User.attributes(), nil
}

func (c *InstagramClient) fetchProfilePage(ctx context.Context, username string) (*model.ProfileAttributes, error) {
	reqURL := fmt.Sprintf("%s/%s/", c.baseURL, url.PathEscape(username))

	body, _, err := c.get(ctx, reqURL, "text/html")
	if err != nil {
		return nil, err
	}
	return c.parser.Parse(string(body))
}

// get 执行GET请求，返回响应体和Content-Type
func (c *InstagramClient) get(ctx context.Context, reqURL, accept string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", instagramUserAgent)
	req.Header.Set("Accept", accept)
	if c.appID != "" {
		req.Header.Set("X-IG-App-ID", c.appID)
	}
	if c.sessionID != "" {
		req.AddCookie(&http.Cookie{Name: "sessionid", Value: c.sessionID})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, resp.Header.Get("Content-Type"), nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, "", ErrProfileNotFound
	case resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden,
		resp.StatusCode == http.StatusTooManyRequests:
		return nil, "", fmt.Errorf("%w: %s", ErrAccessDenied, resp.Status)
	default:
		return nil, "", fmt.Errorf("instagram error: %s", resp.Status)
	}
}

// attributes JSON转属性；count为null时按0处理，字段整体缺失时保持nil
func (u *instagramUser) attributes() *model.ProfileAttributes {
	attrs := &model.ProfileAttributes{}
	if u.ProfilePicURL != nil {
		has := *u.ProfilePicURL != ""
		attrs.HasProfilePicture = &has
	}
	attrs.PostCount = u.EdgeOwnerToTimelineMedia.value()
	attrs.FollowerCount = u.EdgeFollowedBy.value()
	attrs.FollowingCount = u.EdgeFollow.value()
	return attrs
}

func (e *edgeCount) value() *int {
	if e == nil {
		return nil
	}
	n := 0
	if e.Count != nil {
		n = *e.Count
	}
	return &n
}

package fetcher

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"account-analyze-go/internal/model"
)

// ProfilePageParser Instagram profile页面HTML解析器
// 只读取 og:description 和 og:image 两个meta标签
type ProfilePageParser struct{}

// NewProfilePageParser 创建解析器
func NewProfilePageParser() *ProfilePageParser {
	return &ProfilePageParser{}
}

// 例: "1,234 Followers, 56 Following, 7 Posts - See Instagram photos and videos from ..."
var ogCountsRegex = regexp.MustCompile(`(?i)([\d.,]+\s*[KMB]?)\s+Followers?\s*,\s*([\d.,]+\s*[KMB]?)\s+Following\s*,\s*([\d.,]+\s*[KMB]?)\s+Posts?`)

// Parse 解析profile页面
func (p *ProfilePageParser) Parse(html string) (*model.ProfileAttributes, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	description, ok := metaContent(doc, "og:description")
	if !ok {
		return nil, fmt.Errorf("%w: og:description not found", model.ErrInvalidAttributes)
	}

	matches := ogCountsRegex.FindStringSubmatch(description)
	if len(matches) != 4 {
		return nil, fmt.Errorf("%w: unrecognized og:description %q", model.ErrInvalidAttributes, description)
	}

	followers, err := ParseCount(matches[1])
	if err != nil {
		return nil, fmt.Errorf("%w: followers: %v", model.ErrInvalidAttributes, err)
	}
	following, err := ParseCount(matches[2])
	if err != nil {
		return nil, fmt.Errorf("%w: following: %v", model.ErrInvalidAttributes, err)
	}
	posts, err := ParseCount(matches[3])
	if err != nil {
		return nil, fmt.Errorf("%w: posts: %v", model.ErrInvalidAttributes, err)
	}

	image, _ := metaContent(doc, "og:image")
	return model.NewProfileAttributes(image != "", posts, followers, following), nil
}

func metaContent(doc *goquery.Document, property string) (string, bool) {
	sel := doc.Find(fmt.Sprintf(`meta[property=%q]`, property)).First()
	if sel.Length() == 0 {
		return "", false
	}
	content, exists := sel.Attr("content")
	if !exists {
		return "", false
	}
	return strings.TrimSpace(content), true
}

// ParseCount 解析计数文本，支持 "1,234" "12K" "1.5M" 等格式
func ParseCount(text string) (int, error) {
	s := strings.ToUpper(strings.TrimSpace(text))
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, fmt.Errorf("empty count")
	}

	multiplier := 1.0
	switch s[len(s)-1] {
	case 'K':
		multiplier = 1e3
	case 'M':
		multiplier = 1e6
	case 'B':
		multiplier = 1e9
	}

	if multiplier == 1 {
		// 无单位时逗号和点都是千分位
		digits := strings.NewReplacer(",", "", ".", "").Replace(s)
		n, err := strconv.Atoi(digits)
		if err != nil || n < 0 || n >= math.MaxInt32 {
			return 0, fmt.Errorf("invalid count %q", text)
		}
		return n, nil
	}

	num := strings.ReplaceAll(s[:len(s)-1], ",", "")
	f, err := strconv.ParseFloat(num, 64)
	if err != nil || f < 0 || math.IsNaN(f) {
		return 0, fmt.Errorf("invalid count %q", text)
	}
	v := f*multiplier + 0.5
	if v >= math.MaxInt32 {
		return 0, fmt.Errorf("count out of range %q", text)
	}
	return int(v), nil
}

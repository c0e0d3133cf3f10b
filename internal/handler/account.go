package handler

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"account-analyze-go/internal/logger"
	"account-analyze-go/internal/model"
	"account-analyze-go/internal/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

// maxFormBytes 表单/JSON请求体上限
const maxFormBytes = 1 << 20

// BatchAnalyzer 批量分析能力
type BatchAnalyzer interface {
	Analyze(ctx context.Context, usernames []string) *model.Batch
}

// AccountHandler 账号分析HTTP处理器
type AccountHandler struct {
	analyzer  BatchAnalyzer
	templates *template.Template
}

// resultsView 结果页数据
type resultsView struct {
	Batch  *model.Batch
	Counts map[string]int
}

// NewAccountHandler 创建处理器
func NewAccountHandler(analyzer BatchAnalyzer) (*AccountHandler, error) {
	tmpl, err := template.New("").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &AccountHandler{analyzer: analyzer, templates: tmpl}, nil
}

// Index 入口页
// GET  /  表单
// POST /  usernames=空白分隔的用户名，渲染结果页
func (h *AccountHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.render(w, "index.html", nil)
	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		usernames := utils.SplitUsernames(r.PostForm.Get("usernames"))

		logger.Info("Form analysis requested", zap.Int("usernames", len(usernames)))
		batch := h.analyzer.Analyze(r.Context(), usernames)

		h.render(w, "results.html", resultsView{Batch: batch, Counts: countsView(batch)})
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// AnalyzeJSON JSON分析接口
// POST /api/analyze
// Body: {"usernames": ["a", "b"]}
func (h *AccountHandler) AnalyzeJSON(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes)).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	logger.Info("API analysis requested", zap.Int("usernames", len(req.Usernames)))
	batch := h.analyzer.Analyze(r.Context(), req.Usernames)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(batch); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

// Health 健康检查
func (h *AccountHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *AccountHandler) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		logger.Error("Failed to render template", zap.String("template", name), zap.Error(err))
	}
}

func countsView(batch *model.Batch) map[string]int {
	counts := make(map[string]int)
	for c, n := range batch.CountByCategory() {
		counts[string(c)] = n
	}
	return counts
}

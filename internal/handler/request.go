package handler

// AnalyzeRequest JSON分析请求
type AnalyzeRequest struct {
	Usernames []string `json:"usernames"` // 待分析的用户名列表
}

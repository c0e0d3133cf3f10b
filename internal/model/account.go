package model

import (
	"errors"
	"strconv"
)

// ErrInvalidAttributes 抓取到的profile缺少必要字段
var ErrInvalidAttributes = errors.New("invalid profile attributes")

// Category 账号分类
type Category string

const (
	CategoryReal    Category = "Real"
	CategoryWarning Category = "Warning"
	CategoryFake    Category = "Fake"
)

// AllCategories 所有分类
var AllCategories = []Category{CategoryReal, CategoryWarning, CategoryFake}

// ProfileAttributes 单个账号的公开属性
// 字段为nil表示上游数据缺失该字段
type ProfileAttributes struct {
	HasProfilePicture *bool `json:"has_profile_picture" validate:"required"`
	PostCount         *int  `json:"post_count" validate:"required,min=0"`
	FollowerCount     *int  `json:"follower_count" validate:"required,min=0"`
	FollowingCount    *int  `json:"following_count" validate:"required,min=0"`
}

// NewProfileAttributes 用完整数据构造属性
func NewProfileAttributes(hasPicture bool, posts, followers, following int) *ProfileAttributes {
	return &ProfileAttributes{
		HasProfilePicture: &hasPicture,
		PostCount:         &posts,
		FollowerCount:     &followers,
		FollowingCount:    &following,
	}
}

// AnalysisRecord 单个账号的分析结果
type AnalysisRecord struct {
	Username   string   `json:"username"`
	FraudScore int      `json:"fraud_score"`
	Category   Category `json:"category"`
	Posts      int      `json:"posts"`
	Followers  int      `json:"followers"`
	Following  int      `json:"following"`
	// Signals 命中的规则名，仅用于展示，不落盘
	Signals    []string `json:"signals,omitempty"`
}

// RecordColumns 结果列名，CSV表头和数据表列顺序一致
var RecordColumns = []string{"username", "fraud_score", "category", "posts", "followers", "following"}

// Row 按RecordColumns顺序输出字段
func (r AnalysisRecord) Row() []string {
	return []string{
		r.Username,
		strconv.Itoa(r.FraudScore),
		string(r.Category),
		strconv.Itoa(r.Posts),
		strconv.Itoa(r.Followers),
		strconv.Itoa(r.Following),
	}
}

// SkippedUsername 被跳过的用户名及原因
type SkippedUsername struct {
	Username string `json:"username"`
	Reason   string `json:"reason"`
}

// Batch 一次分析的完整结果
type Batch struct {
	ID      string            `json:"batch_id"`
	Records []AnalysisRecord  `json:"records"`
	Skipped []SkippedUsername `json:"skipped,omitempty"`
}

// CountByCategory 按分类统计
func (b *Batch) CountByCategory() map[Category]int {
	counts := make(map[Category]int, len(AllCategories))
	for _, c := range AllCategories {
		counts[c] = 0
	}
	for _, r := range b.Records {
		counts[r.Category]++
	}
	return counts
}

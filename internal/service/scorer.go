package service

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"account-analyze-go/internal/model"
)

// MaxFraudScore 所有规则同时触发时的分数
const MaxFraudScore = 130

// ScoreRule 单条打分规则
type ScoreRule struct {
	Name   string
	Weight int
	Match  func(p profileCounts) bool
}

// profileCounts 已校验的属性值
type profileCounts struct {
	hasPicture bool
	posts      int
	followers  int
	following  int
}

// ScoreRules 打分规则表，各规则独立判断，命中即累加权重
var ScoreRules = []ScoreRule{
	{
		Name:   "no_profile_picture",
		Weight: 30,
		Match:  func(p profileCounts) bool { return !p.hasPicture },
	},
	{
		Name:   "few_posts",
		Weight: 20,
		Match:  func(p profileCounts) bool { return p.posts < 5 },
	},
	{
		Name:   "few_followers",
		Weight: 20,
		Match:  func(p profileCounts) bool { return p.followers < 100 },
	},
	{
		Name:   "mass_following",
		Weight: 30,
		Match:  func(p profileCounts) bool { return p.following > 1000 },
	},
	{
		Name:   "following_exceeds_followers",
		Weight: 30,
		Match:  func(p profileCounts) bool { return p.followers < p.following },
	},
}

// ScoreEngine 根据属性计算fraud score
type ScoreEngine struct {
	rules    []ScoreRule
	validate *validator.Validate
}

// NewScoreEngine 使用默认规则表创建打分器
func NewScoreEngine() *ScoreEngine {
	return &ScoreEngine{
		rules:    ScoreRules,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Score 计算fraud score，属性缺失或非法时返回 ErrInvalidAttributes
func (e *ScoreEngine) Score(attrs *model.ProfileAttributes) (int, error) {
	score, _, err := e.Assess(attrs)
	return score, err
}

// Explain 返回命中的规则名
func (e *ScoreEngine) Explain(attrs *model.ProfileAttributes) ([]string, error) {
	_, fired, err := e.Assess(attrs)
	return fired, err
}

// Assess 返回分数和命中的规则名
func (e *ScoreEngine) Assess(attrs *model.ProfileAttributes) (int, []string, error) {
	counts, err := e.counts(attrs)
	if err != nil {
		return 0, nil, err
	}

	score := 0
	var fired []string
	for _, rule := range e.rules {
		if rule.Match(counts) {
			score += rule.Weight
			fired = append(fired, rule.Name)
		}
	}
	return score, fired, nil
}

func (e *ScoreEngine) counts(attrs *model.ProfileAttributes) (profileCounts, error) {
	if attrs == nil {
		return profileCounts{}, fmt.Errorf("%w: nil attributes", model.ErrInvalidAttributes)
	}
	if err := e.validate.Struct(attrs); err != nil {
		return profileCounts{}, fmt.Errorf("%w: %v", model.ErrInvalidAttributes, err)
	}
	return profileCounts{
		hasPicture: *attrs.HasProfilePicture,
		posts:      *attrs.PostCount,
		followers:  *attrs.FollowerCount,
		following:  *attrs.FollowingCount,
	}, nil
}

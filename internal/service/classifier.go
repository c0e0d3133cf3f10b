package service

import "account-analyze-go/internal/model"

const (
	fakeThreshold    = 80
	warningThreshold = 50
)

// Classify 按分数阈值分类，优先级从高到低
func Classify(score int) model.Category {
	switch {
	case score >= fakeThreshold:
		return model.CategoryFake
	case score >= warningThreshold:
		return model.CategoryWarning
	default:
		return model.CategoryReal
	}
}

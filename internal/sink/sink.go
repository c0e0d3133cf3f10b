package sink

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"account-analyze-go/internal/logger"
	"account-analyze-go/internal/model"
)

// Target 单个落盘目标
type Target interface {
	Name() string
	Write(ctx context.Context, records []model.AnalysisRecord) error
}

// TargetError 单个目标的失败信息
type TargetError struct {
	Target string
	Err    error
}

func (e TargetError) Error() string {
	return fmt.Sprintf("%s: %v", e.Target, e.Err)
}

func (e TargetError) Unwrap() error {
	return e.Err
}

// PersistenceError 一次落盘中失败的目标集合
type PersistenceError struct {
	Failures []TargetError
}

func (e *PersistenceError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = f.Error()
	}
	return "persist results: " + strings.Join(parts, "; ")
}

// Unwrap 支持 errors.Is / errors.As 匹配任一目标的错误
func (e *PersistenceError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// ResultSink 依次写入所有目标，单个目标失败不影响其他目标
type ResultSink struct {
	mu      sync.Mutex
	targets []Target
}

// NewResultSink 创建落盘器
func NewResultSink(targets ...Target) *ResultSink {
	return &ResultSink{targets: targets}
}

// Persist 写入整批结果，失败时返回 *PersistenceError
func (s *ResultSink) Persist(ctx context.Context, records []model.AnalysisRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var failures []TargetError
	for _, t := range s.targets {
		if err := t.Write(ctx, records); err != nil {
			failures = append(failures, TargetError{Target: t.Name(), Err: err})
			continue
		}
		logger.Info("Results saved", zap.String("target", t.Name()), zap.Int("rows", len(records)))
	}

	if len(failures) > 0 {
		return &PersistenceError{Failures: failures}
	}
	return nil
}

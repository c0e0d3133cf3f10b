package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"account-analyze-go/internal/fetcher"
	"account-analyze-go/internal/logger"
	"account-analyze-go/internal/model"
	"account-analyze-go/internal/utils"
)

// ErrInvalidUsername 用户名不符合规则，不发起抓取
var ErrInvalidUsername = errors.New("invalid username")

// persistTimeout 落盘超时，不受请求取消影响
const persistTimeout = 30 * time.Second

// ResultSink 批次结果落盘
type ResultSink interface {
	Persist(ctx context.Context, records []model.AnalysisRecord) error
}

// Outcome 单个用户名的处理结果，Err非空时Record无效
type Outcome struct {
	Username string
	Record   model.AnalysisRecord
	Err      error
}

// AccountService 批量账号分析
type AccountService struct {
	fetcher fetcher.ProfileFetcher
	scorer  *ScoreEngine
	sink    ResultSink
}

// NewAccountService 创建分析服务
func NewAccountService(f fetcher.ProfileFetcher, sink ResultSink) *AccountService {
	return &AccountService{
		fetcher: f,
		scorer:  NewScoreEngine(),
		sink:    sink,
	}
}

// Evaluate 抓取并打分单个用户名
func (s *AccountService) Evaluate(ctx context.Context, username string) Outcome {
	out := Outcome{Username: username}

	if !utils.IsValidUsername(username) {
		out.Err = fmt.Errorf("%w: %q", ErrInvalidUsername, username)
		return out
	}

	attrs, err := s.fetcher.FetchProfile(ctx, username)
	if err != nil {
		out.Err = fmt.Errorf("fetch profile: %w", err)
		return out
	}

	score, signals, err := s.scorer.Assess(attrs)
	if err != nil {
		out.Err = err
		return out
	}

	out.Record = model.AnalysisRecord{
		Username:   username,
		FraudScore: score,
		Category:   Classify(score),
		Posts:      *attrs.PostCount,
		Followers:  *attrs.FollowerCount,
		Following:  *attrs.FollowingCount,
		Signals:    signals,
	}
	return out
}

// Analyze 按输入顺序分析所有用户名
// 失败的用户名记录日志后跳过；全部处理完后落盘一次（空批次同样落盘）
func (s *AccountService) Analyze(ctx context.Context, usernames []string) *model.Batch {
	start := time.Now()
	batch := &model.Batch{
		ID:      uuid.NewString(),
		Records: make([]model.AnalysisRecord, 0, len(usernames)),
	}
	log := logger.Get().With(zap.String("batch_id", batch.ID))
	log.Info("Starting account analysis", zap.Int("usernames", len(usernames)))

	outcomes := make([]Outcome, 0, len(usernames))
	for _, raw := range usernames {
		name := utils.NormalizeUsername(raw)
		if name == "" {
			continue
		}
		outcomes = append(outcomes, s.Evaluate(ctx, name))
	}

	for _, o := range outcomes {
		if o.Err != nil {
			reason := skipReason(o.Err)
			log.Warn("Skipping username", zap.String("username", o.Username), zap.String("reason", reason), zap.Error(o.Err))
			accountsSkippedTotal.WithLabelValues(reason).Inc()
			batch.Skipped = append(batch.Skipped, model.SkippedUsername{Username: o.Username, Reason: reason})
			continue
		}
		accountsAnalyzedTotal.WithLabelValues(string(o.Record.Category)).Inc()
		batch.Records = append(batch.Records, o.Record)
	}

	if s.sink != nil {
		// 客户端断开后已收集的结果仍需落盘
		persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
		if err := s.sink.Persist(persistCtx, batch.Records); err != nil {
			persistFailuresTotal.Inc()
			log.Error("Failed to persist analysis results", zap.Error(err))
		}
		cancel()
	}

	batchDuration.Observe(time.Since(start).Seconds())
	log.Info("Account analysis completed",
		zap.Int("analyzed", len(batch.Records)),
		zap.Int("skipped", len(batch.Skipped)),
		zap.Duration("elapsed", time.Since(start)))

	return batch
}

func skipReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidUsername):
		return "invalid_username"
	case errors.Is(err, fetcher.ErrProfileNotFound):
		return "not_found"
	case errors.Is(err, fetcher.ErrAccessDenied):
		return "access_denied"
	case errors.Is(err, model.ErrInvalidAttributes):
		return "invalid_attributes"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "fetch_error"
	}
}

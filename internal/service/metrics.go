package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	accountsAnalyzedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "account_analysis_accounts_total",
		Help: "Total number of accounts scored, by category",
	}, []string{"category"})

	accountsSkippedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "account_analysis_skipped_total",
		Help: "Total number of usernames skipped because the profile could not be fetched or was incomplete",
	}, []string{"reason"})

	persistFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "account_analysis_persist_failures_total",
		Help: "Total number of batches whose results could not be fully persisted",
	})

	batchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "account_analysis_batch_duration_seconds",
		Help:    "Wall time of one analysis batch including persistence",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	})
)

package store

import (
	"context"
	"encoding/json"

	"github.com/researchkit/researcherAPI/internal/config"
	"github.com/researchkit/researcherAPI/internal/data/redisStore"
	"github.com/researchkit/researcherAPI/internal/domain/docModel"
	"github.com/researchkit/researcherAPI/pkg/logger_i"
)

// ReportStore persists ingest reports so the driving surface can serve
// "what happened to my upload" after the request returns.
type ReportStore interface {
	SaveReport(ctx context.Context, id string, report docModel.IngestReport) error
	GetReport(ctx context.Context, id string) (docModel.IngestReport, bool)
	DeleteReport(ctx context.Context, id string)
}

type RedisReportStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisReportStore(ctx context.Context) *RedisReportStore {
	inner := redisStore.GetRedisStore(ctx, config.RedisReportStore)
	if inner == nil {
		return nil
	}
	return &RedisReportStore{
		store:  inner,
		logger: logger_i.NewLogger("ReportStore"),
	}
}

func (s *RedisReportStore) SaveReport(ctx context.Context, id string, report docModel.IngestReport) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "report Id", id)
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}

	err = s.store.Set(ctx, id, data, config.RedisReportTTL)
	if err == nil {
		log.Debug("Saved report to Redis")
	}
	return err
}

func (s *RedisReportStore) GetReport(ctx context.Context, id string) (docModel.IngestReport, bool) {
	var report docModel.IngestReport
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "report Id", id)

	val, err := s.store.Get(ctx, id)
	if s.store.IsNil(err) {
		return report, false
	} else if err != nil {
		log.Error("Error reading report from Redis", "error", err)
		return report, false
	}

	if err := json.Unmarshal([]byte(val), &report); err != nil {
		log.Error("Error unmarshalling report", "error", err)
		return report, false
	}
	return report, true
}

func (s *RedisReportStore) DeleteReport(ctx context.Context, id string) {
	if err := s.store.Del(ctx, id); err != nil {
		s.logger.Error("Error deleting report from Redis", "report Id", id, "error", err)
	}
}

// TestReportStore builds a store over an injected redis wrapper; test
// use only.
func TestReportStore(store *redisStore.Store) *RedisReportStore {
	return &RedisReportStore{
		store:  store,
		logger: logger_i.NewLogger("test report store"),
	}
}

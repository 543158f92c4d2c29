package store

import (
	"context"
	"sync"

	"github.com/researchkit/researcherAPI/internal/domain/docModel"
	"github.com/researchkit/researcherAPI/pkg/logger_i"
)

// InMemoryReportStore is the fallback when Redis is offline. Reports
// then live only as long as the process.
type InMemoryReportStore struct {
	mu      *sync.RWMutex
	reports map[string]docModel.IngestReport
	logger  *logger_i.Logger
}

func InitInMemoryReportStore() *InMemoryReportStore {
	return &InMemoryReportStore{
		mu:      new(sync.RWMutex),
		reports: make(map[string]docModel.IngestReport),
		logger:  logger_i.NewLogger("InMem ReportStore"),
	}
}

func (s *InMemoryReportStore) SaveReport(ctx context.Context, id string, report docModel.IngestReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[id] = report
	s.logger.Debug("Saved report", "report Id", id)
	return nil
}

func (s *InMemoryReportStore) GetReport(ctx context.Context, id string) (docModel.IngestReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, found := s.reports[id]
	return report, found
}

func (s *InMemoryReportStore) DeleteReport(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reports, id)
}

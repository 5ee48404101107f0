package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/prospectius/crm-backend/internal/core/ports"
)

// ReportingService runs the read-only aggregates and applies the pure
// post-processing (sorting, rate formatting). No side effects beyond the
// queries themselves.
type ReportingService struct {
	repo ports.ReportRepository
	log  zerolog.Logger
}

func NewReportingService(repo ports.ReportRepository, log zerolog.Logger) *ReportingService {
	return &ReportingService{repo: repo, log: log}
}

// StatusDistribution returns the status histogram sorted by count,
// descending.
func (s *ReportingService) StatusDistribution(ctx context.Context) ([]ports.StatusCount, error) {
	counts, err := s.repo.StatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	return sortStatusCounts(counts), nil
}

// ConversionRate computes converted/total as a two-decimal percentage
// string. An empty store yields "0.00%", never a division fault.
func (s *ReportingService) ConversionRate(ctx context.Context) (*ports.ConversionReport, error) {
	converti, total, err := s.repo.ConversionTotals(ctx)
	if err != nil {
		return nil, err
	}
	report := buildConversionReport(converti, total)
	return &report, nil
}

// UserPerformance returns per-account totals enriched with the formatted
// conversion rate, sorted by numeric rate, descending.
func (s *ReportingService) UserPerformance(ctx context.Context) ([]ports.UserPerformance, error) {
	totals, err := s.repo.UserConversionTotals(ctx)
	if err != nil {
		return nil, err
	}
	return buildUserPerformance(totals), nil
}

func (s *ReportingService) CreatedByMonth(ctx context.Context) ([]ports.MonthlyCreation, error) {
	return s.repo.CreatedByMonth(ctx)
}

// --- Pure post-processing ---

func sortStatusCounts(counts []ports.StatusCount) []ports.StatusCount {
	sorted := make([]ports.StatusCount, len(counts))
	copy(sorted, counts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Count > sorted[j].Count })
	return sorted
}

func buildConversionReport(converti, total int64) ports.ConversionReport {
	return ports.ConversionReport{
		TotalConverti:  converti,
		TotalProspects: total,
		TauxConversion: formatRate(converti, total),
	}
}

func buildUserPerformance(totals []ports.UserTotals) []ports.UserPerformance {
	result := make([]ports.UserPerformance, len(totals))
	for i, t := range totals {
		result[i] = ports.UserPerformance{
			Username:       t.Username,
			TotalProspects: t.TotalProspects,
			TotalConverti:  t.TotalConverti,
			TauxConversion: formatRate(t.TotalConverti, t.TotalProspects),
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return rate(result[i].TotalConverti, result[i].TotalProspects) >
			rate(result[j].TotalConverti, result[j].TotalProspects)
	})
	return result
}

func rate(converted, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(converted) / float64(total) * 100
}

func formatRate(converted, total int64) string {
	return fmt.Sprintf("%.2f%%", rate(converted, total))
}

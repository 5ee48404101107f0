package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/prospectius/crm-backend/internal/core/ports"
)

type stubReportRepo struct {
	statusCounts []ports.StatusCount
	converti     int64
	total        int64
	userTotals   []ports.UserTotals
	monthly      []ports.MonthlyCreation
}

func (r *stubReportRepo) StatusCounts(context.Context) ([]ports.StatusCount, error) {
	return r.statusCounts, nil
}

func (r *stubReportRepo) ConversionTotals(context.Context) (int64, int64, error) {
	return r.converti, r.total, nil
}

func (r *stubReportRepo) UserConversionTotals(context.Context) ([]ports.UserTotals, error) {
	return r.userTotals, nil
}

func (r *stubReportRepo) CreatedByMonth(context.Context) ([]ports.MonthlyCreation, error) {
	return r.monthly, nil
}

func TestReportingService_StatusDistribution_SortedByCount(t *testing.T) {
	repo := &stubReportRepo{statusCounts: []ports.StatusCount{
		{Status: "nouveau", Count: 3},
		{Status: "converti", Count: 9},
		{Status: "perdu", Count: 5},
	}}
	svc := NewReportingService(repo, zerolog.Nop())

	counts, err := svc.StatusDistribution(context.Background())
	if err != nil {
		t.Fatalf("status distribution failed: %v", err)
	}
	want := []string{"converti", "perdu", "nouveau"}
	for i, status := range want {
		if counts[i].Status != status {
			t.Fatalf("position %d: expected %s, got %s", i, status, counts[i].Status)
		}
	}
}

func TestReportingService_ConversionRate_Formatting(t *testing.T) {
	repo := &stubReportRepo{converti: 1, total: 8}
	svc := NewReportingService(repo, zerolog.Nop())

	report, err := svc.ConversionRate(context.Background())
	if err != nil {
		t.Fatalf("conversion rate failed: %v", err)
	}
	if report.TauxConversion != "12.50%" {
		t.Fatalf("expected 12.50%%, got %s", report.TauxConversion)
	}
	if report.TotalConverti != 1 || report.TotalProspects != 8 {
		t.Fatalf("totals not carried through: %+v", report)
	}
}

func TestReportingService_ConversionRate_EmptyStore(t *testing.T) {
	svc := NewReportingService(&stubReportRepo{}, zerolog.Nop())

	report, err := svc.ConversionRate(context.Background())
	if err != nil {
		t.Fatalf("conversion rate failed: %v", err)
	}
	if report.TauxConversion != "0.00%" {
		t.Fatalf("expected 0.00%% on empty store, got %s", report.TauxConversion)
	}
}

func TestReportingService_UserPerformance_SortedByRate(t *testing.T) {
	repo := &stubReportRepo{userTotals: []ports.UserTotals{
		{Username: "jdupont", TotalProspects: 10, TotalConverti: 2},   // 20.00%
		{Username: "amartin", TotalProspects: 4, TotalConverti: 3},    // 75.00%
		{Username: "plefevre", TotalProspects: 0, TotalConverti: 0},   // 0.00%
	}}
	svc := NewReportingService(repo, zerolog.Nop())

	rows, err := svc.UserPerformance(context.Background())
	if err != nil {
		t.Fatalf("user performance failed: %v", err)
	}
	if rows[0].Username != "amartin" || rows[0].TauxConversion != "75.00%" {
		t.Fatalf("unexpected leader: %+v", rows[0])
	}
	if rows[1].Username != "jdupont" || rows[1].TauxConversion != "20.00%" {
		t.Fatalf("unexpected second: %+v", rows[1])
	}
	if rows[2].Username != "plefevre" || rows[2].TauxConversion != "0.00%" {
		t.Fatalf("zero-prospect account mishandled: %+v", rows[2])
	}
}

func TestReportingService_CreatedByMonth_PassThrough(t *testing.T) {
	repo := &stubReportRepo{monthly: []ports.MonthlyCreation{
		{Month: "2026-03", TotalCreated: 4},
		{Month: "2026-04", TotalCreated: 7},
	}}
	svc := NewReportingService(repo, zerolog.Nop())

	rows, err := svc.CreatedByMonth(context.Background())
	if err != nil {
		t.Fatalf("created by month failed: %v", err)
	}
	if len(rows) != 2 || rows[1].Month != "2026-04" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

package mysql

import (
	"context"

	"github.com/prospectius/crm-backend/internal/core/ports"
)

// ReportRepository runs the read-only aggregate queries.
type ReportRepository struct {
	exec *Executor
}

func NewReportRepository(exec *Executor) *ReportRepository {
	return &ReportRepository{exec: exec}
}

func (r *ReportRepository) StatusCounts(ctx context.Context) ([]ports.StatusCount, error) {
	const q = `SELECT status, COUNT(id_prospect) AS count
	           FROM Prospect
	           GROUP BY status`
	recs, err := r.exec.QueryAll(ctx, q)
	if err != nil {
		return nil, err
	}
	counts := make([]ports.StatusCount, len(recs))
	for i, rec := range recs {
		counts[i] = ports.StatusCount{
			Status: rec.String("status"),
			Count:  rec.Int64("count"),
		}
	}
	return counts, nil
}

func (r *ReportRepository) ConversionTotals(ctx context.Context) (int64, int64, error) {
	const q = `SELECT COUNT(CASE WHEN status = 'converti' THEN 1 END) AS total_converti,
	                  COUNT(id_prospect) AS total_prospects
	           FROM Prospect`
	rec, err := r.exec.QueryOne(ctx, q)
	if err != nil {
		return 0, 0, err
	}
	if rec == nil {
		return 0, 0, nil
	}
	return rec.Int64("total_converti"), rec.Int64("total_prospects"), nil
}

func (r *ReportRepository) UserConversionTotals(ctx context.Context) ([]ports.UserTotals, error) {
	const q = `SELECT a.username,
	                  COUNT(p.id_prospect) AS total_prospects,
	                  COUNT(CASE WHEN p.status = 'converti' THEN 1 END) AS total_converti
	           FROM Prospect p
	           JOIN Account a ON p.assignation = a.id_compte
	           GROUP BY a.username
	           ORDER BY total_converti DESC`
	recs, err := r.exec.QueryAll(ctx, q)
	if err != nil {
		return nil, err
	}
	totals := make([]ports.UserTotals, len(recs))
	for i, rec := range recs {
		totals[i] = ports.UserTotals{
			Username:       rec.String("username"),
			TotalProspects: rec.Int64("total_prospects"),
			TotalConverti:  rec.Int64("total_converti"),
		}
	}
	return totals, nil
}

func (r *ReportRepository) CreatedByMonth(ctx context.Context) ([]ports.MonthlyCreation, error) {
	const q = `SELECT DATE_FORMAT(creation, '%Y-%m') AS month_year,
	                  COUNT(id_prospect) AS total_created
	           FROM Prospect
	           GROUP BY month_year
	           ORDER BY month_year ASC`
	recs, err := r.exec.QueryAll(ctx, q)
	if err != nil {
		return nil, err
	}
	months := make([]ports.MonthlyCreation, len(recs))
	for i, rec := range recs {
		months[i] = ports.MonthlyCreation{
			Month:        rec.String("month_year"),
			TotalCreated: rec.Int64("total_created"),
		}
	}
	return months, nil
}

var _ ports.ReportRepository = (*ReportRepository)(nil)

package ports

import "context"

// StatusCount is one bucket of the status histogram.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// ConversionReport is the global conversion-rate aggregate. TauxConversion
// is pre-formatted as a two-decimal percentage string ("12.50%").
type ConversionReport struct {
	TotalConverti  int64  `json:"total_converti"`
	TotalProspects int64  `json:"total_prospects"`
	TauxConversion string `json:"taux_conversion"`
}

// UserTotals is the raw per-account aggregate read from the store.
type UserTotals struct {
	Username       string
	TotalProspects int64
	TotalConverti  int64
}

// UserPerformance is UserTotals enriched with the formatted conversion rate.
type UserPerformance struct {
	Username       string `json:"username"`
	TotalProspects int64  `json:"total_prospects"`
	TotalConverti  int64  `json:"total_converti"`
	TauxConversion string `json:"taux_conversion"`
}

// MonthlyCreation counts prospects created in one calendar month ("2026-04").
type MonthlyCreation struct {
	Month        string `json:"month_year"`
	TotalCreated int64  `json:"total_created"`
}

// ReportingService exposes the read-only reporting aggregates.
type ReportingService interface {
	// StatusDistribution returns the status histogram sorted by count,
	// descending.
	StatusDistribution(ctx context.Context) ([]StatusCount, error)
	// ConversionRate never divides by zero: an empty store yields "0.00%".
	ConversionRate(ctx context.Context) (*ConversionReport, error)
	// UserPerformance is sorted by numeric conversion rate, descending.
	UserPerformance(ctx context.Context) ([]UserPerformance, error)
	CreatedByMonth(ctx context.Context) ([]MonthlyCreation, error)
}

// ReportRepository runs the aggregate queries.
type ReportRepository interface {
	StatusCounts(ctx context.Context) ([]StatusCount, error)
	ConversionTotals(ctx context.Context) (converti, total int64, err error)
	UserConversionTotals(ctx context.Context) ([]UserTotals, error)
	CreatedByMonth(ctx context.Context) ([]MonthlyCreation, error)
}

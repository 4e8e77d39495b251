package application

import (
	"time"

	"github.com/dagocoffee/dago-orders-service/internal/domain"
	"github.com/dagocoffee/dago-orders-service/internal/repository"
)

const DefaultPageSize = 50

type ReportFilters struct {
	Start         string
	End           string
	CartID        string
	PaymentMethod string
	Page          int
	PageSize      int
}

type ReportSummary struct {
	Orders     int     `json:"orders"`
	PaidOrders int     `json:"paidOrders"`
	Revenue    float64 `json:"revenue"`
	Currency   string  `json:"currency"`
	TotalRows  int     `json:"totalRows"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}

type SalesReport struct {
	Summary ReportSummary       `json:"summary"`
	Rows    []domain.SaleRecord `json:"rows"`
	Page    int                 `json:"page"`
	HasMore bool                `json:"hasMore"`
}

// ReportService filters, paginates and aggregates the persisted sale
// records on demand. Records keep their append order.
type ReportService struct {
	sales repository.SalesRepo
}

func NewReportService(sales repository.SalesRepo) *ReportService {
	return &ReportService{sales: sales}
}

// Report applies the filters conjunctively and pages the result. Page
// defaulting happens at the HTTP boundary; a page outside the matching
// range yields an empty row slice while the summary stays accurate.
func (s *ReportService) Report(f ReportFilters) SalesReport {
	if f.PageSize <= 0 {
		f.PageSize = DefaultPageSize
	}

	filtered := s.sales.Load()

	if start, ok := parseDay(f.Start); ok {
		filtered = filterByDay(filtered, func(d time.Time) bool { return !d.Before(start) })
	}
	if end, ok := parseDay(f.End); ok {
		filtered = filterByDay(filtered, func(d time.Time) bool { return !d.After(end) })
	}
	if f.CartID != "" {
		kept := filtered[:0:0]
		for _, rec := range filtered {
			if rec.CartID != nil && *rec.CartID == f.CartID {
				kept = append(kept, rec)
			}
		}
		filtered = kept
	}
	if f.PaymentMethod != "" {
		kept := filtered[:0:0]
		for _, rec := range filtered {
			if rec.Method != nil && *rec.Method == f.PaymentMethod {
				kept = append(kept, rec)
			}
		}
		filtered = kept
	}

	totalRows := len(filtered)
	totalPages := (totalRows + f.PageSize - 1) / f.PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	// Revenue sums the entire filtered set, not just the requested page.
	var revenue float64
	for _, rec := range filtered {
		revenue += rec.Amount
	}

	rows := []domain.SaleRecord{}
	startIdx := (f.Page - 1) * f.PageSize
	if startIdx >= 0 && startIdx < totalRows {
		endIdx := startIdx + f.PageSize
		if endIdx > totalRows {
			endIdx = totalRows
		}
		rows = filtered[startIdx:endIdx]
	}

	return SalesReport{
		Summary: ReportSummary{
			Orders:     totalRows,
			PaidOrders: totalRows,
			Revenue:    revenue,
			Currency:   "IDR",
			TotalRows:  totalRows,
			PageSize:   f.PageSize,
			TotalPages: totalPages,
		},
		Rows:    rows,
		Page:    f.Page,
		HasMore: f.Page < totalPages,
	}
}

// filterByDay drops records whose paidAt is absent or unparsable, then
// applies keep to the calendar day of the rest.
func filterByDay(sales []domain.SaleRecord, keep func(time.Time) bool) []domain.SaleRecord {
	kept := sales[:0:0]
	for _, rec := range sales {
		if rec.PaidAt == nil {
			continue
		}
		paid, ok := parseTimestamp(*rec.PaidAt)
		if !ok {
			continue
		}
		if keep(dayOf(paid)) {
			kept = append(kept, rec)
		}
	}
	return kept
}

// parseDay reads a date filter value; a full timestamp is accepted and
// truncated to its day.
func parseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return dayOf(t), true
	}
	if t, ok := parseTimestamp(s); ok {
		return dayOf(t), true
	}
	return time.Time{}, false
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

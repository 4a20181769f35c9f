// Package apod fetches NASA's Astronomy Picture of the Day, either from the
// public JSON API or by scraping the published HTML pages.
package apod

import (
	"context"
	"fmt"
	"time"

	"skyguide/internal/domain"
)

const (
	// DemoKey is the shared NASA key used when no personal key is configured.
	DemoKey = "DEMO_KEY"
	// DateLayout is the date format understood by the APOD API.
	DateLayout = "2006-01-02"
	// MaxScrapeRangeDays caps how many pages a single scraped range may fetch.
	MaxScrapeRangeDays = 30
	// DefaultTimeout bounds every upstream request.
	DefaultTimeout = 10 * time.Second

	serviceName    = "NASA APOD"
	serviceVersion = "v1"
)

// Fetcher returns APOD records for a single day or an inclusive date range.
// An empty date means today.
type Fetcher interface {
	Fetch(ctx context.Context, date string) (*domain.APOD, error)
	FetchRange(ctx context.Context, start, end string) ([]domain.APOD, error)
}

// parseRange validates an inclusive date range. maxDays <= 0 disables the span check.
func parseRange(start, end string, maxDays int) (time.Time, time.Time, error) {
	from, err := time.Parse(DateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewValidationError("start_date", "must be formatted as YYYY-MM-DD")
	}
	to, err := time.Parse(DateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewValidationError("end_date", "must be formatted as YYYY-MM-DD")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, domain.NewValidationError("end_date", "must not be before start_date")
	}
	if maxDays > 0 {
		days := int(to.Sub(from).Hours()/24) + 1
		if days > maxDays {
			return time.Time{}, time.Time{}, domain.NewValidationError("end_date",
				fmt.Sprintf("date range spans %d days, at most %d days can be fetched at once", days, maxDays))
		}
	}
	return from, to, nil
}

package leave

import (
	"strings"
	"time"

	"github.com/Anuradha654321/faculty-leave-system/internal/catalog"
	leaveerrors "github.com/Anuradha654321/faculty-leave-system/internal/leave/errors"
)

const (
	dateLayout     = "2006-01-02"
	rangeSeparator = " to "
)

// Period is the canonical form every submitted leave period normalizes to.
type Period struct {
	StartDate time.Time
	EndDate   time.Time
	TotalDays float64
}

// ResolvePeriod normalizes a raw period expression into a Period.
//
// Casual leave may list individual dates joined by commas; the list is
// taken in submission order, so start and end are the first and last
// entries and total days is the list length. Any other category accepts a
// single date or a "start to end" range. requestedDays, when supplied by
// the client, is honored for ranges only when it is exactly half a day
// below the inclusive span, which is how a trailing half day is expressed.
func ResolvePeriod(category catalog.Category, raw string, requestedDays float64) (Period, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Period{}, leaveerrors.ErrMissingPeriod
	}

	if category == catalog.CategoryCasual && strings.Contains(raw, ",") {
		return resolveDateList(raw)
	}

	if strings.Contains(raw, rangeSeparator) || strings.HasSuffix(raw, " to") {
		return resolveRange(raw, requestedDays)
	}

	day, err := parseDate(raw)
	if err != nil {
		return Period{}, err
	}
	total := 1.0
	if requestedDays == 0.5 {
		total = requestedDays
	}
	return Period{StartDate: day, EndDate: day, TotalDays: total}, nil
}

// ResolvePermission maps a permission request onto its fixed half-day
// period: start = end = the supplied date, 0.5 days regardless of slot.
func ResolvePermission(rawDate string) (Period, error) {
	day, err := parseDate(strings.TrimSpace(rawDate))
	if err != nil {
		return Period{}, err
	}
	return Period{StartDate: day, EndDate: day, TotalDays: 0.5}, nil
}

func resolveDateList(raw string) (Period, error) {
	parts := strings.Split(raw, ",")
	dates := make([]time.Time, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		d, err := parseDate(p)
		if err != nil {
			return Period{}, err
		}
		dates = append(dates, d)
	}
	if len(dates) == 0 {
		return Period{}, leaveerrors.ErrMalformedPeriod
	}

	// First and last by list order; the client submits dates chronologically.
	return Period{
		StartDate: dates[0],
		EndDate:   dates[len(dates)-1],
		TotalDays: float64(len(dates)),
	}, nil
}

func resolveRange(raw string, requestedDays float64) (Period, error) {
	// A dangling "start to" with no end collapses to a single day.
	raw = strings.TrimSuffix(raw, " to")
	parts := strings.SplitN(raw, rangeSeparator, 2)

	start, err := parseDate(strings.TrimSpace(parts[0]))
	if err != nil {
		return Period{}, err
	}

	end := start
	if len(parts) == 2 {
		if rest := strings.TrimSpace(parts[1]); rest != "" {
			end, err = parseDate(rest)
			if err != nil {
				return Period{}, err
			}
		}
	}
	if end.Before(start) {
		return Period{}, leaveerrors.ErrMalformedPeriod
	}

	// The client may shave half a day off the span; any other submitted
	// value is ignored in favor of the computed count.
	total := end.Sub(start).Hours()/24 + 1
	if requestedDays == total-0.5 {
		total = requestedDays
	}
	return Period{StartDate: start, EndDate: end, TotalDays: total}, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrMalformedPeriod
	}
	return t, nil
}

package leave_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Anuradha654321/faculty-leave-system/internal/catalog"
	"github.com/Anuradha654321/faculty-leave-system/internal/leave"
	leaveerrors "github.com/Anuradha654321/faculty-leave-system/internal/leave/errors"
)

func TestResolvePeriod_CasualDateList(t *testing.T) {
	t.Run("list of n dates resolves to first, last, n days", func(t *testing.T) {
		p, err := leave.ResolvePeriod(catalog.CategoryCasual, "2025-03-03, 2025-03-05, 2025-03-07", 0)

		assert.NoError(t, err)
		assert.Equal(t, "2025-03-03", p.StartDate.Format("2006-01-02"))
		assert.Equal(t, "2025-03-07", p.EndDate.Format("2006-01-02"))
		assert.Equal(t, 3.0, p.TotalDays)
	})

	t.Run("single date without comma counts one day", func(t *testing.T) {
		p, err := leave.ResolvePeriod(catalog.CategoryCasual, "2025-03-03", 0)

		assert.NoError(t, err)
		assert.Equal(t, p.StartDate, p.EndDate)
		assert.Equal(t, 1.0, p.TotalDays)
	})

	t.Run("list order wins over chronological order", func(t *testing.T) {
		p, err := leave.ResolvePeriod(catalog.CategoryCasual, "2025-03-07, 2025-03-03", 0)

		assert.NoError(t, err)
		assert.Equal(t, "2025-03-07", p.StartDate.Format("2006-01-02"))
		assert.Equal(t, "2025-03-03", p.EndDate.Format("2006-01-02"))
		assert.Equal(t, 2.0, p.TotalDays)
	})

	t.Run("negative unparseable entry", func(t *testing.T) {
		_, err := leave.ResolvePeriod(catalog.CategoryCasual, "2025-03-03, not-a-date", 0)

		assert.ErrorIs(t, err, leaveerrors.ErrMalformedPeriod)
	})

	t.Run("negative comma list for non-casual category is not a list", func(t *testing.T) {
		_, err := leave.ResolvePeriod(catalog.CategoryRegular, "2025-03-03, 2025-03-05", 0)

		assert.ErrorIs(t, err, leaveerrors.ErrMalformedPeriod)
	})
}

func TestResolvePeriod_Range(t *testing.T) {
	t.Run("inclusive range", func(t *testing.T) {
		p, err := leave.ResolvePeriod(catalog.CategoryRegular, "2025-01-10 to 2025-01-12", 0)

		assert.NoError(t, err)
		assert.Equal(t, "2025-01-10", p.StartDate.Format("2006-01-02"))
		assert.Equal(t, "2025-01-12", p.EndDate.Format("2006-01-02"))
		assert.Equal(t, 3.0, p.TotalDays)
	})

	t.Run("degenerate range with empty end falls back to start", func(t *testing.T) {
		p, err := leave.ResolvePeriod(catalog.CategoryRegular, "2025-01-10 to ", 0)

		assert.NoError(t, err)
		assert.Equal(t, p.StartDate, p.EndDate)
		assert.Equal(t, 1.0, p.TotalDays)
	})

	t.Run("half day on a single date is honored", func(t *testing.T) {
		p, err := leave.ResolvePeriod(catalog.CategoryRegular, "2025-01-10", 0.5)

		assert.NoError(t, err)
		assert.Equal(t, 0.5, p.TotalDays)
	})

	t.Run("requested half day inside the span is honored", func(t *testing.T) {
		p, err := leave.ResolvePeriod(catalog.CategoryRegular, "2025-01-10 to 2025-01-12", 2.5)

		assert.NoError(t, err)
		assert.Equal(t, 2.5, p.TotalDays)
	})

	t.Run("requested days beyond the span are ignored", func(t *testing.T) {
		p, err := leave.ResolvePeriod(catalog.CategoryRegular, "2025-01-10 to 2025-01-12", 5)

		assert.NoError(t, err)
		assert.Equal(t, 3.0, p.TotalDays)
	})

	t.Run("requested days far below the span are ignored", func(t *testing.T) {
		p, err := leave.ResolvePeriod(catalog.CategoryRegular, "2025-01-10 to 2025-01-12", 0.5)

		assert.NoError(t, err)
		assert.Equal(t, 3.0, p.TotalDays)
	})

	t.Run("negative end before start", func(t *testing.T) {
		_, err := leave.ResolvePeriod(catalog.CategoryRegular, "2025-01-12 to 2025-01-10", 0)

		assert.ErrorIs(t, err, leaveerrors.ErrMalformedPeriod)
	})
}

func TestResolvePeriod_Empty(t *testing.T) {
	_, err := leave.ResolvePeriod(catalog.CategoryRegular, "   ", 0)

	assert.ErrorIs(t, err, leaveerrors.ErrMissingPeriod)
}

func TestResolvePermission(t *testing.T) {
	t.Run("fixed half day on the supplied date", func(t *testing.T) {
		p, err := leave.ResolvePermission("2025-03-10")

		assert.NoError(t, err)
		assert.Equal(t, "2025-03-10", p.StartDate.Format("2006-01-02"))
		assert.Equal(t, p.StartDate, p.EndDate)
		assert.Equal(t, 0.5, p.TotalDays)
	})

	t.Run("negative unparseable date", func(t *testing.T) {
		_, err := leave.ResolvePermission("10-03-2025")

		assert.ErrorIs(t, err, leaveerrors.ErrMalformedPeriod)
	})
}

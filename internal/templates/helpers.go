package templates

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/csg33k/ui19-exporter/internal/domain"
)

// randDisplay renders an amount as "R 0.00".
func randDisplay(d decimal.Decimal) string {
	return "R " + d.StringFixed(2)
}

// itoa converts an int64 to a string, used for building URL paths.
func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

func dateValue(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func optDateValue(t *time.Time) string {
	if t == nil {
		return ""
	}
	return dateValue(*t)
}

func reasonValue(r *domain.TerminationReason) int {
	if r == nil {
		return 0
	}
	return int(*r)
}

func nonContribValue(r *domain.NonContributorReason) int {
	if r == nil {
		return 0
	}
	return int(*r)
}

func kib(n int) string {
	if n < 1024 {
		return strconv.Itoa(n) + " B"
	}
	return strconv.FormatFloat(float64(n)/1024, 'f', 1, 64) + " KiB"
}

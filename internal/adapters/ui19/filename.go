package ui19

import (
	"strings"
	"time"

	"github.com/csg33k/ui19-exporter/internal/domain"
)

const (
	timestampLayout = "20060102150405"
	timestampLen    = 14
	filenameExt     = ".csv"
	unnamedPart     = "UNNAMED"
)

// Filename builds SYSTEM_TENANT_PERIOD_TIMESTAMP.csv. Only two exports of
// the same report to the same target within one second can collide. The
// extension is always .csv, whatever the payload's real layout.
func Filename(t domain.Target, tenant, period string, at time.Time) string {
	ts := at.Format(timestampLayout)
	if len(ts) > timestampLen {
		ts = ts[:timestampLen]
	}
	return strings.Join([]string{
		strings.ToUpper(string(t)),
		sanitize(tenant),
		sanitize(period),
		ts,
	}, "_") + filenameExt
}

// sanitize maps everything outside [A-Za-z0-9 ] to '_', turns each run of
// whitespace into a single '_' and trims '_' from both ends.
func sanitize(s string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			return r
		}
		return '_'
	}, strings.TrimSpace(s))
	out := strings.Trim(strings.Join(strings.Fields(mapped), "_"), "_")
	if out == "" {
		return unnamedPart
	}
	return out
}

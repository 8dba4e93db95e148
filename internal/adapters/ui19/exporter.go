// Package ui19 encodes canonical UI-19 reports for the seven downstream
// payroll, accounting and tax systems that accept them.
package ui19

import (
	"fmt"
	"time"

	"golang.org/x/text/encoding/unicode"

	"github.com/csg33k/ui19-exporter/internal/adapters/ui19/spec"
	"github.com/csg33k/ui19-exporter/internal/domain"
)

// Exporter is the single entry point used by the web and CLI layers. It holds
// no mutable state and is safe for concurrent use.
type Exporter struct {
	now func() time.Time
	loc *time.Location
}

type Option func(*Exporter)

// WithClock overrides the clock used for filename timestamps.
func WithClock(now func() time.Time) Option {
	return func(x *Exporter) { x.now = now }
}

// WithLocation sets the zone filename timestamps are rendered in.
func WithLocation(loc *time.Location) Option {
	return func(x *Exporter) {
		if loc != nil {
			x.loc = loc
		}
	}
}

func New(opts ...Option) *Exporter {
	x := &Exporter{now: time.Now, loc: time.Local}
	for _, o := range opts {
		o(x)
	}
	return x
}

// Export encodes r for target t, prefixes the text with a UTF-8 byte-order
// mark and names the file. An unknown target fails with ErrUnsupportedTarget
// and no payload. A report of the wrong kind panics.
func (x *Exporter) Export(r *domain.Report, t domain.Target) (*domain.ExportFile, error) {
	payload, err := Encode(r, t)
	if err != nil {
		return nil, err
	}
	data, err := unicode.UTF8BOM.NewEncoder().Bytes([]byte(payload))
	if err != nil {
		return nil, fmt.Errorf("ui19: encode %s payload: %w", t, err)
	}
	return &domain.ExportFile{
		Target:   t,
		Filename: Filename(t, r.Employer.LegalName, r.Employer.Period.Label(), x.now().In(x.loc)),
		Data:     data,
	}, nil
}

// Targets lists the supported targets with their labels.
func (x *Exporter) Targets() []domain.TargetInfo {
	all := spec.All()
	out := make([]domain.TargetInfo, len(all))
	for i, s := range all {
		out[i] = domain.TargetInfo{Target: s.Target, Label: s.Label}
	}
	return out
}

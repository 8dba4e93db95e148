package spec_test

import (
	"testing"

	"github.com/csg33k/ui19-exporter/internal/adapters/ui19/spec"
	"github.com/csg33k/ui19-exporter/internal/domain"
)

func TestEveryTargetHasLayout(t *testing.T) {
	for _, target := range domain.Targets() {
		s, ok := spec.For(target)
		if !ok {
			t.Errorf("%s: no layout", target)
			continue
		}
		if s.Target != target {
			t.Errorf("%s: layout claims target %s", target, s.Target)
		}
		if s.Label == "" {
			t.Errorf("%s: empty label", target)
		}
		if len(s.Columns) == 0 {
			t.Errorf("%s: no columns", target)
		}
		for _, c := range s.Columns {
			if c.Name == "" || c.Value == nil {
				t.Errorf("%s: column %+v missing name or accessor", target, c)
			}
		}
	}
}

func TestForRejectsUnknown(t *testing.T) {
	for _, target := range []domain.Target{"", "pastel", "SAGE", "sage "} {
		if _, ok := spec.For(target); ok {
			t.Errorf("For(%q) should not resolve", target)
		}
	}
}

func TestAllOrder(t *testing.T) {
	all := spec.All()
	targets := domain.Targets()
	if len(all) != len(targets) {
		t.Fatalf("All() has %d layouts, want %d", len(all), len(targets))
	}
	for i := range all {
		if all[i].Target != targets[i] {
			t.Errorf("All()[%d] = %s, want %s", i, all[i].Target, targets[i])
		}
	}
}

func TestLayoutFamilies(t *testing.T) {
	tests := []struct {
		target domain.Target
		layout spec.Layout
		delim  rune
		header bool
	}{
		{domain.TargetSage, spec.Delimited, ',', true},
		{domain.TargetPsiber, spec.Delimited, '|', false},
		{domain.TargetSARS, spec.Envelope, '|', false},
		{domain.TargetXero, spec.Delimited, ',', true},
		{domain.TargetKerridge, spec.FixedWidth, 0, false},
		{domain.TargetAutomate, spec.Delimited, '\t', true},
		{domain.TargetQuickBooks, spec.Delimited, ',', true},
	}
	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			s, _ := spec.For(tt.target)
			if s.Layout != tt.layout {
				t.Errorf("layout = %s, want %s", s.Layout, tt.layout)
			}
			if s.Delimiter != tt.delim {
				t.Errorf("delimiter = %q, want %q", s.Delimiter, tt.delim)
			}
			if s.Header != tt.header {
				t.Errorf("header = %v, want %v", s.Header, tt.header)
			}
		})
	}
}

// Kerridge columns must tile the 80-character record with no gap or overlap.
func TestKerridgeColumnsTileRecord(t *testing.T) {
	s, _ := spec.For(domain.TargetKerridge)
	if s.RecordLen != 80 {
		t.Fatalf("RecordLen = %d, want 80", s.RecordLen)
	}
	next := 1
	total := 0
	for _, c := range s.Columns {
		if c.Start != next {
			t.Errorf("%s starts at %d, want %d", c.Name, c.Start, next)
		}
		if c.Len() < 1 {
			t.Errorf("%s has length %d", c.Name, c.Len())
		}
		next = c.End + 1
		total += c.Len()
	}
	if total != s.RecordLen {
		t.Errorf("column lengths sum to %d, want %d", total, s.RecordLen)
	}
}

func TestKerridgePositions(t *testing.T) {
	s, _ := spec.For(domain.TargetKerridge)
	want := map[string][2]int{
		"Sequence":             {1, 6},
		"IDNumber":             {7, 19},
		"Surname":              {20, 35},
		"Initials":             {36, 39},
		"CommencementDate":     {40, 47},
		"TerminationDate":      {48, 55},
		"TerminationReason":    {56, 57},
		"Contributor":          {58, 58},
		"NonContributorReason": {59, 60},
		"GrossRemuneration":    {61, 72},
		"HoursWorked":          {73, 80},
	}
	if len(s.Columns) != len(want) {
		t.Fatalf("got %d columns, want %d", len(s.Columns), len(want))
	}
	for _, c := range s.Columns {
		pos, ok := want[c.Name]
		if !ok {
			t.Errorf("unexpected column %s", c.Name)
			continue
		}
		if c.Start != pos[0] || c.End != pos[1] {
			t.Errorf("%s at %d-%d, want %d-%d", c.Name, c.Start, c.End, pos[0], pos[1])
		}
	}
}

func TestForReturnsCopy(t *testing.T) {
	s, _ := spec.For(domain.TargetSage)
	s.Label = "changed"
	s.Header = false
	s.Columns[2].Name = "changed"
	s.Columns[2].Value = nil
	again, _ := spec.For(domain.TargetSage)
	if again.Label == "changed" || !again.Header {
		t.Error("mutating a returned layout changed the table")
	}
	if again.Columns[2].Name != "Surname" || again.Columns[2].Value == nil {
		t.Errorf("mutating returned columns changed the table: %+v", again.Columns[2])
	}
}

func TestAllReturnsCopies(t *testing.T) {
	for _, s := range spec.All() {
		s.Columns[0].Name = "changed"
	}
	for _, s := range spec.All() {
		if s.Columns[0].Name == "changed" {
			t.Errorf("%s: mutating All() columns changed the table", s.Target)
		}
	}
}

func TestLayoutString(t *testing.T) {
	if got := spec.FixedWidth.String(); got != "fixed-width" {
		t.Errorf("got %q", got)
	}
	if got := spec.Layout(9).String(); got != "Layout(9)" {
		t.Errorf("got %q", got)
	}
}

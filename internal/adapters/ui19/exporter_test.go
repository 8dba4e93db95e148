package ui19_test

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/csg33k/ui19-exporter/internal/adapters/ui19"
	"github.com/csg33k/ui19-exporter/internal/domain"
	"github.com/csg33k/ui19-exporter/internal/ports"
)

var _ ports.ReportExporter = (*ui19.Exporter)(nil)

var bom = []byte{0xEF, 0xBB, 0xBF}

func fixedExporter() *ui19.Exporter {
	clock := func() time.Time { return time.Date(2026, time.February, 3, 12, 0, 0, 0, time.UTC) }
	return ui19.New(ui19.WithClock(clock), ui19.WithLocation(time.UTC))
}

func TestExport(t *testing.T) {
	x := fixedExporter()
	for _, target := range domain.Targets() {
		t.Run(string(target), func(t *testing.T) {
			f, err := x.Export(fixtureReport(), target)
			if err != nil {
				t.Fatalf("Export: %v", err)
			}
			if f.Target != target {
				t.Errorf("Target = %s", f.Target)
			}
			if !bytes.HasPrefix(f.Data, bom) {
				t.Fatalf("payload does not start with a byte-order mark: % x", f.Data[:4])
			}
			if got, want := string(f.Data[len(bom):]), encode(t, fixtureReport(), target); got != want {
				t.Errorf("payload after BOM differs from Encode output")
			}
			want := ui19.Filename(target, "Acme (Pty) Ltd.", "January 2026", time.Date(2026, time.February, 3, 12, 0, 0, 0, time.UTC))
			if f.Filename != want {
				t.Errorf("Filename = %q, want %q", f.Filename, want)
			}
		})
	}
}

func TestExport_SingleBOM(t *testing.T) {
	f, err := fixedExporter().Export(fixtureReport(), domain.TargetSage)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Count(f.Data, bom) != 1 {
		t.Errorf("payload holds %d byte-order marks, want 1", bytes.Count(f.Data, bom))
	}
}

func TestExport_UnsupportedTarget(t *testing.T) {
	f, err := fixedExporter().Export(fixtureReport(), "pastel")
	if !errors.Is(err, ui19.ErrUnsupportedTarget) {
		t.Errorf("err = %v, want ErrUnsupportedTarget", err)
	}
	if f != nil {
		t.Error("expected no file")
	}
}

func TestExport_Location(t *testing.T) {
	sast := time.FixedZone("SAST", 2*60*60)
	x := ui19.New(
		ui19.WithClock(func() time.Time { return time.Date(2026, time.January, 31, 23, 0, 0, 0, time.UTC) }),
		ui19.WithLocation(sast),
	)
	f, err := x.Export(fixtureReport(), domain.TargetXero)
	if err != nil {
		t.Fatal(err)
	}
	if want := "XERO_Acme__Pty__Ltd_January_2026_20260201010000.csv"; f.Filename != want {
		t.Errorf("Filename = %q, want %q", f.Filename, want)
	}
}

func TestExport_Concurrent(t *testing.T) {
	x := fixedExporter()
	want := map[domain.Target]string{}
	for _, target := range domain.Targets() {
		want[target] = encode(t, fixtureReport(), target)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 8; i++ {
		for _, target := range domain.Targets() {
			wg.Add(1)
			go func(target domain.Target) {
				defer wg.Done()
				f, err := x.Export(fixtureReport(), target)
				if err != nil {
					errs <- err
					return
				}
				if string(f.Data[len(bom):]) != want[target] {
					errs <- errors.New(string(target) + ": payload differs under concurrency")
				}
			}(target)
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestTargets(t *testing.T) {
	got := fixedExporter().Targets()
	want := domain.Targets()
	if len(got) != len(want) {
		t.Fatalf("got %d targets, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i].Target != want[i] || got[i].Label == "" {
			t.Errorf("Targets()[%d] = %+v", i, got[i])
		}
	}
}

package domain

import (
	"fmt"
	"strings"
)

// Target names a downstream system that accepts a UI-19 export.
type Target string

const (
	TargetSage       Target = "sage"
	TargetPsiber     Target = "psiber"
	TargetSARS       Target = "sars"
	TargetXero       Target = "xero"
	TargetKerridge   Target = "kerridge"
	TargetAutomate   Target = "automate"
	TargetQuickBooks Target = "quickbooks"
)

// Targets returns the closed set of supported targets in display order.
func Targets() []Target {
	return []Target{
		TargetSage,
		TargetPsiber,
		TargetSARS,
		TargetXero,
		TargetKerridge,
		TargetAutomate,
		TargetQuickBooks,
	}
}

func (t Target) Valid() bool {
	for _, v := range Targets() {
		if v == t {
			return true
		}
	}
	return false
}

// ParseTarget accepts a target identifier in any case. It never guesses:
// anything outside the closed set is an error.
func ParseTarget(s string) (Target, error) {
	t := Target(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown target system %q", s)
	}
	return t, nil
}

// TargetInfo pairs a target with its human-readable label.
type TargetInfo struct {
	Target Target
	Label  string
}

// ExportFile is an encoded export ready to be offered as a download.
type ExportFile struct {
	Target   Target
	Filename string
	Data     []byte
}

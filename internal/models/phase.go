package models

import (
	"fmt"
	"sort"
	"strings"
)

// Phase is one of the Maven default, clean and site lifecycle phases the
// tool offers directly.
type Phase string

const (
	PhaseClean      Phase = "clean"
	PhaseValidate   Phase = "validate"
	PhaseCompile    Phase = "compile"
	PhaseTest       Phase = "test"
	PhasePackage    Phase = "package"
	PhaseVerify     Phase = "verify"
	PhaseInstall    Phase = "install"
	PhaseDeploy     Phase = "deploy"
	PhaseSite       Phase = "site"
	PhaseSiteDeploy Phase = "site-deploy"
)

var canonicalPhases = []Phase{
	PhaseClean,
	PhaseValidate,
	PhaseCompile,
	PhaseTest,
	PhasePackage,
	PhaseVerify,
	PhaseInstall,
	PhaseDeploy,
	PhaseSite,
	PhaseSiteDeploy,
}

// Phases returns all phases in canonical order.
func Phases() []Phase {
	return append([]Phase(nil), canonicalPhases...)
}

// Index returns the canonical position of the phase, or -1 if unknown.
func (p Phase) Index() int {
	for i, c := range canonicalPhases {
		if c == p {
			return i
		}
	}
	return -1
}

// IsValid checks if the phase is one of the canonical phases
func (p Phase) IsValid() bool {
	return p.Index() >= 0
}

// DisplayName is the lower-case, hyphenated name Maven accepts on the command line.
func (p Phase) DisplayName() string {
	return string(p)
}

func (p Phase) String() string {
	return string(p)
}

// ParsePhase accepts the command-line form ("site-deploy") as well as
// enum-style spellings ("SITE_DEPLOY").
func ParsePhase(s string) (Phase, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	phase := Phase(normalized)
	if !phase.IsValid() {
		return "", fmt.Errorf("invalid phase: %s", s)
	}
	return phase, nil
}

// ParsePhases parses a list of phase names, rejecting unknown ones.
func ParsePhases(values []string) ([]Phase, error) {
	phases := make([]Phase, 0, len(values))
	for _, v := range values {
		phase, err := ParsePhase(v)
		if err != nil {
			return nil, err
		}
		phases = append(phases, phase)
	}
	return phases, nil
}

// SortPhases returns the distinct phases in canonical order.
func SortPhases(phases []Phase) []Phase {
	seen := make(map[Phase]struct{}, len(phases))
	result := make([]Phase, 0, len(phases))
	for _, p := range phases {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		result = append(result, p)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Index() < result[j].Index()
	})
	return result
}

package roadmap

import (
	"fmt"
	"strconv"
)

// NextHotfix computes the next free hotfix number for the active phase.
// Phase numbers use the last digit as a hotfix slot: base phase 0020 owns
// slots 0021..0029. Absent an active phase, the most recently added phase
// (last in document order) anchors the base. Returns "" when the roadmap
// has no phases or all nine slots are taken.
func NextHotfix(rm *Roadmap) string {
	if len(rm.Phases) == 0 {
		return ""
	}
	anchor := rm.ActivePhase()
	if anchor == nil {
		anchor = rm.Phases[len(rm.Phases)-1]
	}

	n, err := strconv.Atoi(anchor.Number)
	if err != nil {
		return ""
	}
	base := n / 10 * 10

	for off := 1; off <= 9; off++ {
		candidate := fmt.Sprintf("%04d", base+off)
		if rm.PhaseByNumber(candidate) == nil {
			return candidate
		}
	}
	return ""
}

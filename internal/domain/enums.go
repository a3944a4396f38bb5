package domain

// Size is the T-shirt sizing enumeration driving estimated effort.
// SizeTBD is the default, unsized state.
type Size string

const (
	SizeTBD  Size = "tbd"
	SizeXS   Size = "xs"
	SizeS    Size = "s"
	SizeM    Size = "m"
	SizeL    Size = "l"
	SizeXL   Size = "xl"
	SizeXXL  Size = "xxl"
	SizeXXXL Size = "xxxl"
)

// SizeOrder lists all sizes smallest-first, TBD last. Used for display
// ordering and for iterating the closed set deterministically.
var SizeOrder = []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL, SizeXXXL, SizeTBD}

// ValidSizes is the canonical set of accepted size strings.
var ValidSizes = map[Size]bool{
	SizeTBD: true, SizeXS: true, SizeS: true, SizeM: true,
	SizeL: true, SizeXL: true, SizeXXL: true, SizeXXXL: true,
}

// Phase is the delivery-wave classification, visually color-coded.
// The empty string means unset.
type Phase string

const (
	PhaseNone       Phase = ""
	Phase1          Phase = "phase1"
	Phase2          Phase = "phase2"
	Phase3          Phase = "phase3"
	Phase4          Phase = "phase4"
	PhaseFuture     Phase = "future"
	PhaseOutOfScope Phase = "out_of_scope"
)

// PhaseOrder lists all non-empty phases in delivery order.
var PhaseOrder = []Phase{Phase1, Phase2, Phase3, Phase4, PhaseFuture, PhaseOutOfScope}

// ValidPhases is the canonical set of accepted non-empty phase strings.
// The empty string (unset) is accepted wherever a phase is optional.
var ValidPhases = map[Phase]bool{
	Phase1: true, Phase2: true, Phase3: true, Phase4: true,
	PhaseFuture: true, PhaseOutOfScope: true,
}

// DisplayName returns the human-readable label for a phase.
func (p Phase) DisplayName() string {
	switch p {
	case Phase1:
		return "Phase 1"
	case Phase2:
		return "Phase 2"
	case Phase3:
		return "Phase 3"
	case Phase4:
		return "Phase 4"
	case PhaseFuture:
		return "Future"
	case PhaseOutOfScope:
		return "Out of Scope"
	}
	return "—"
}

// DisplayName returns the uppercase label for a size.
func (s Size) DisplayName() string {
	if s == SizeTBD {
		return "TBD"
	}
	return asciiUpper(string(s))
}

func asciiUpper(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'a' && b[i] <= 'z' {
			b[i] -= 'a' - 'A'
		}
	}
	return string(b)
}

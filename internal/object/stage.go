package object

// Stage is a toy's position in its lifecycle. Stages only move forward.
type Stage int

const (
	StageFalling Stage = iota // Dropping towards its target height
	StageSettled              // Resting, worth the full reward
	StageFading               // Shrinking and fading out, worth the reduced reward
	StageExpired              // Gone; never rendered or collectible
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageFalling:
		return "falling"
	case StageSettled:
		return "settled"
	case StageFading:
		return "fading"
	case StageExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Collectible reports whether a toy in this stage can be collected.
func (s Stage) Collectible() bool {
	return s == StageSettled || s == StageFading
}

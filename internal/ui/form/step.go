package form

// Step is the position of the form in its workflow.
//
//	idle -> extracting -> reviewing -> confirming -> done
//
// Failures and empty extractions fall back to idle, cancel returns to idle
// from anywhere, and a new submission from done starts extracting again.
type Step int

const (
	StepIdle Step = iota
	StepExtracting
	StepReviewing
	StepConfirming
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepIdle:
		return "idle"
	case StepExtracting:
		return "extracting"
	case StepReviewing:
		return "reviewing"
	case StepConfirming:
		return "confirming"
	case StepDone:
		return "done"
	default:
		return "unknown"
	}
}

// label is what the progress section shows while a phase is running.
func (s Step) label() string {
	switch s {
	case StepExtracting:
		return "Extracting claims"
	case StepConfirming:
		return "Searching sources and verifying"
	case StepDone:
		return "Analysis complete"
	default:
		return ""
	}
}

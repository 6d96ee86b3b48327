package domain

// Outcome tracks a single broadcast invocation. Rejected covers input that never
// reached persistence (invalid template, empty recipient set).
type Outcome int

const (
	OutcomeIdle Outcome = iota
	OutcomeResolving
	OutcomeResolutionFailed
	OutcomeResolved
	OutcomeWriting
	OutcomeAllFailed
	OutcomePartialSuccess
	OutcomeFullSuccess
	OutcomeRejected
)

var outcomeNames = map[Outcome]string{
	OutcomeIdle:             "idle",
	OutcomeResolving:        "resolving",
	OutcomeResolutionFailed: "resolution_failed",
	OutcomeResolved:         "resolved",
	OutcomeWriting:          "writing",
	OutcomeAllFailed:        "all_failed",
	OutcomePartialSuccess:   "partial_success",
	OutcomeFullSuccess:      "full_success",
	OutcomeRejected:         "rejected",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return "unknown"
}

func (o Outcome) Terminal() bool {
	switch o {
	case OutcomeResolutionFailed, OutcomeAllFailed, OutcomePartialSuccess, OutcomeFullSuccess, OutcomeRejected:
		return true
	default:
		return false
	}
}

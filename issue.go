package guidelinematcher

// IssueSeverity classifies an authoring-time issue.
type IssueSeverity string

const (
	// SeverityError indicates content the engine will never act on.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates content that is permitted but suspicious.
	SeverityWarning IssueSeverity = "warning"
	// SeverityInformation indicates advisory feedback.
	SeverityInformation IssueSeverity = "information"
)

// Issue is a single authoring-time diagnostic produced by ruleset linting.
// Issues never block loading or evaluation; a rule that draws an error issue
// simply evaluates to "does not fire" at runtime.
type Issue struct {
	Severity IssueSeverity `json:"severity"`

	// Message is a human-readable description aimed at a non-programmer
	// rule author.
	Message string `json:"message"`

	// RuleID identifies the rule the issue belongs to, when applicable.
	RuleID string `json:"ruleId,omitempty"`

	// Path locates the offending element, e.g. "rules[2].when.all[0].op".
	Path string `json:"path,omitempty"`
}

// IsError returns true for error-severity issues.
func (i Issue) IsError() bool {
	return i.Severity == SeverityError
}

// String returns a human-readable representation of the issue.
func (i Issue) String() string {
	s := string(i.Severity) + ": " + i.Message
	if i.Path != "" {
		s += " at " + i.Path
	}
	return s
}

package threshold

// Severity identifies one of the independently configurable alert levels.
// "error" is the configuration name for what the final output calls critical.
type Severity int

const (
	// SeverityWarning is the lowest configurable level
	SeverityWarning Severity = iota
	// SeverityError maps to the user-facing critical verdict
	SeverityError
	// SeverityFatal is the highest configurable level
	SeverityFatal
)

// EscalationOrder lists the severities from the most severe to the least
// severe. Evaluation always walks this exact order.
var EscalationOrder = []Severity{SeverityFatal, SeverityError, SeverityWarning}

// String returns the configuration name of the severity
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	}

	return "unknown"
}

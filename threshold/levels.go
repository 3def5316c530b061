package threshold

import (
	"fmt"
	"strconv"
	"strings"
)

// Levels holds the optional numeric threshold configured for each severity.
// A severity without a threshold is never evaluated.
type Levels struct {
	values [3]float64
	set    [3]bool
}

// ParseLevels parses a comma-joined "warning,error,fatal" specification.
// Trailing entries may be omitted and any entry may be left empty to skip
// that severity, e.g. "10", "10,20,30" or ",,5".
func ParseLevels(spec string) (Levels, error) {
	levels := Levels{}
	if strings.TrimSpace(spec) == "" {
		return levels, nil
	}

	order := []Severity{SeverityWarning, SeverityError, SeverityFatal}
	parts := strings.Split(spec, ",")
	if len(parts) > len(order) {
		return Levels{}, fmt.Errorf("too many threshold values in %q, expected at most %d", spec, len(order))
	}

	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		value, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return Levels{}, fmt.Errorf("invalid %s threshold %q: %w", order[i].String(), part, err)
		}

		levels.values[order[i]] = value
		levels.set[order[i]] = true
	}

	return levels, nil
}

// NewLevels builds a Levels value directly, mostly useful in tests
func NewLevels(pairs map[Severity]float64) Levels {
	levels := Levels{}
	for severity, value := range pairs {
		levels.values[severity] = value
		levels.set[severity] = true
	}

	return levels
}

// Get returns the threshold for the provided severity and whether it was set
func (l Levels) Get(severity Severity) (float64, bool) {
	if severity < SeverityWarning || severity > SeverityFatal {
		return 0, false
	}

	return l.values[severity], l.set[severity]
}

// IsEmpty returns true when no severity carries a threshold
func (l Levels) IsEmpty() bool {
	for _, isSet := range l.set {
		if isSet {
			return false
		}
	}

	return true
}

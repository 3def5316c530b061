package runner

import (
	"strings"

	"github.com/iulianpascalau/graphite-check/checks"
)

// Nagios-style process exit codes. Fatal has no code of its own, it folds
// into the critical one.
const (
	ExitOK       = 0
	ExitWarning  = 1
	ExitCritical = 2
	ExitUnknown  = 3
)

const messageSeparator = "; "

// Render turns the accumulated buckets into the single output line and its
// exit code. The most severe non-empty bucket wins; with concatOutput the
// lower-severity messages are appended to the body instead of being dropped.
func Render(result *checks.Result, concatOutput bool) (string, int) {
	switch {
	case len(result.Fatals) > 0:
		messages := result.Fatals
		if concatOutput {
			messages = concat(messages, result.Criticals, result.Warnings, result.OKs)
		}
		return "CRITICAL - " + strings.Join(messages, messageSeparator), ExitCritical
	case len(result.Criticals) > 0:
		messages := result.Criticals
		if concatOutput {
			messages = concat(messages, result.Warnings, result.OKs)
		}
		return "CRITICAL - " + strings.Join(messages, messageSeparator), ExitCritical
	case len(result.Warnings) > 0:
		messages := result.Warnings
		if concatOutput {
			messages = concat(messages, result.OKs)
		}
		return "WARNING - " + strings.Join(messages, messageSeparator), ExitWarning
	default:
		return "OK - " + strings.Join(result.OKs, messageSeparator), ExitOK
	}
}

// RenderUnknown reports a failed run (transport, decode or empty-result
// errors) with the verbatim error text
func RenderUnknown(err error) (string, int) {
	return "UNKNOWN - " + err.Error(), ExitUnknown
}

func concat(first []string, rest ...[]string) []string {
	merged := make([]string, 0, len(first))
	merged = append(merged, first...)
	for _, messages := range rest {
		merged = append(merged, messages...)
	}

	return merged
}

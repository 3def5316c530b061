package checks

import "github.com/iulianpascalau/graphite-check/threshold"

// Result accumulates the four message buckets across all targets and all
// enabled checks of one run. Buckets only ever grow, they are never reset
// between checks.
type Result struct {
	Warnings  []string
	Criticals []string
	Fatals    []string
	OKs       []string
}

// AddBreach routes a threshold breach to its bucket. The error severity
// lands in the user-facing critical bucket.
func (r *Result) AddBreach(breach threshold.Breach) {
	switch breach.Severity {
	case threshold.SeverityFatal:
		r.Fatals = append(r.Fatals, breach.Message)
	case threshold.SeverityError:
		r.Criticals = append(r.Criticals, breach.Message)
	case threshold.SeverityWarning:
		r.Warnings = append(r.Warnings, breach.Message)
	}
}

// AddWarning appends a message to the warning bucket
func (r *Result) AddWarning(message string) {
	r.Warnings = append(r.Warnings, message)
}

// AddCritical appends a message to the critical bucket
func (r *Result) AddCritical(message string) {
	r.Criticals = append(r.Criticals, message)
}

// AddOK appends a message to the ok bucket
func (r *Result) AddOK(message string) {
	r.OKs = append(r.OKs, message)
}

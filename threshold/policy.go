package threshold

import "fmt"

// Breach records one severity whose threshold was crossed, together with its
// rendered message
type Breach struct {
	Severity Severity
	Message  string
}

// ArgsEvaluate holds one measurement and the policy knobs deciding how it is
// judged against the configured levels
type ArgsEvaluate struct {
	// Measured is the derived quantity produced by an evaluator
	Measured float64
	// Defined is false when the measurement could not be computed; an
	// undefined measurement never breaches
	Defined bool
	Levels  Levels
	// GreaterThan flips the sense of "bad": when false the measured value
	// exceeding the threshold is a breach, when true falling below it is
	GreaterThan bool
	// ShortCircuit stops the escalation walk at the first breach
	ShortCircuit bool
	// Render builds the breach message; when nil a plain
	// "<measured> is <greater|less> than <threshold>" wording is used
	Render func(measured float64, comparison string, level float64) string
}

// Evaluate walks the severities in escalation order (fatal, error, warning),
// skipping any severity without a configured threshold, and returns the
// breached ones. With ShortCircuit set only the most severe breach is
// returned.
func Evaluate(args ArgsEvaluate) []Breach {
	if !args.Defined {
		return nil
	}

	render := args.Render
	if render == nil {
		render = func(measured float64, comparison string, level float64) string {
			return fmt.Sprintf("%g is %s than %g", measured, comparison, level)
		}
	}

	breaches := make([]Breach, 0, len(EscalationOrder))
	for _, severity := range EscalationOrder {
		level, isSet := args.Levels.Get(severity)
		if !isSet {
			continue
		}

		breached := args.Measured > level
		comparison := "greater"
		if args.GreaterThan {
			breached = level > args.Measured
			comparison = "less"
		}
		if !breached {
			continue
		}

		breaches = append(breaches, Breach{
			Severity: severity,
			Message:  render(args.Measured, comparison, level),
		})
		if args.ShortCircuit {
			break
		}
	}

	return breaches
}

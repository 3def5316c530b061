package checks

import (
	"fmt"
	"strconv"

	"github.com/iulianpascalau/graphite-check/config"
	"github.com/iulianpascalau/graphite-check/threshold"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("checks")

// measurement is the per-series quantity an evaluator derived, together with
// its rendering. All evaluators funnel through the same threshold walk so
// direction and short-output behave identically everywhere.
type measurement struct {
	measured float64
	defined  bool
	levels   threshold.Levels
	render   func(measured float64, comparison string, level float64) string
	okText   string
}

func applyThresholds(m measurement, cfg config.RunConfig, res *Result) {
	breaches := threshold.Evaluate(threshold.ArgsEvaluate{
		Measured:     m.measured,
		Defined:      m.defined,
		Levels:       m.levels,
		GreaterThan:  cfg.GreaterThan,
		ShortCircuit: cfg.ShortOutput,
		Render:       m.render,
	})

	for _, breach := range breaches {
		res.AddBreach(breach)
	}

	// the ok narrative is always recorded; the final rendering decides
	// whether it is shown
	res.AddOK(m.okText)
}

// ordinal renders 90 as "90th", 52 as "52nd" and so on
func ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}

	return strconv.Itoa(n) + suffix
}

func formatValue(v float64) string {
	return fmt.Sprintf("%g", v)
}

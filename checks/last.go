package checks

import (
	"fmt"

	"github.com/iulianpascalau/graphite-check/common"
	"github.com/iulianpascalau/graphite-check/config"
	"github.com/iulianpascalau/graphite-check/stats"
)

// EvaluateLast measures each series as the mean of its most recent
// data-points window of non-null values and judges it against the configured
// levels. A target with zero series is an unknown outcome.
func EvaluateLast(target string, series []common.Series, cfg config.RunConfig, res *Result) error {
	if len(series) == 0 {
		return errNoSeries(target)
	}

	for _, s := range series {
		values := s.LastNonNullValues(cfg.DataPoints)
		measured, err := stats.Mean(values)
		defined := err == nil

		log.Debug("last check", "series", s.Name, "window", cfg.DataPoints, "measured", measured, "defined", defined)

		name := s.Name
		okText := fmt.Sprintf("%s has no recent value", name)
		if defined {
			okText = fmt.Sprintf("%s is %s", name, formatValue(measured))
		}

		applyThresholds(measurement{
			measured: measured,
			defined:  defined,
			levels:   cfg.LastLevels,
			render: func(m float64, comparison string, level float64) string {
				return fmt.Sprintf("%s is %s (%s than %s)", name, formatValue(m), comparison, formatValue(level))
			},
			okText: okText,
		}, cfg, res)
	}

	return nil
}

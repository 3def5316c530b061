package checks

import (
	"fmt"

	"github.com/iulianpascalau/graphite-check/common"
	"github.com/iulianpascalau/graphite-check/config"
	"github.com/iulianpascalau/graphite-check/stats"
)

// EvaluateAverage measures each series as the mean of all its non-null
// datapoints, with no window. A target with zero series is an unknown
// outcome.
func EvaluateAverage(target string, series []common.Series, cfg config.RunConfig, res *Result) error {
	if len(series) == 0 {
		return errNoSeries(target)
	}

	for _, s := range series {
		values := s.NonNullValues()
		measured, err := stats.Mean(values)
		defined := err == nil

		log.Debug("average check", "series", s.Name, "samples", len(values), "measured", measured, "defined", defined)

		name := s.Name
		okText := fmt.Sprintf("%s has no data to average", name)
		if defined {
			okText = fmt.Sprintf("%s averages %s", name, formatValue(measured))
		}

		applyThresholds(measurement{
			measured: measured,
			defined:  defined,
			levels:   cfg.AverageLevels,
			render: func(m float64, comparison string, level float64) string {
				return fmt.Sprintf("%s averages %s (%s than %s)", name, formatValue(m), comparison, formatValue(level))
			},
			okText: okText,
		}, cfg, res)
	}

	return nil
}

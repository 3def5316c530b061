package checks

import (
	"fmt"

	"github.com/iulianpascalau/graphite-check/common"
	"github.com/iulianpascalau/graphite-check/config"
	"github.com/iulianpascalau/graphite-check/stats"
)

// EvaluateAveragePercent measures each series as the mean of its most recent
// window expressed as a percentage of the whole-series average. Thresholds
// are interpreted as percentages. An all-null series is inapplicable when
// ignore-nulls is set and an unknown outcome otherwise, so an undefined ratio
// never reaches a comparison.
func EvaluateAveragePercent(target string, series []common.Series, cfg config.RunConfig, res *Result) error {
	if len(series) == 0 {
		return errNoSeries(target)
	}

	for _, s := range series {
		all := s.NonNullValues()
		if len(all) == 0 {
			if cfg.IgnoreNulls {
				res.AddOK(fmt.Sprintf("%s has no data to compare", s.Name))
				continue
			}

			return errNoUsableDatapoints(s.Name)
		}

		avg, _ := stats.Mean(all)
		lastMean, _ := stats.Mean(s.LastNonNullValues(cfg.DataPoints))
		measured := lastMean / avg * 100

		log.Debug("average percent check", "series", s.Name, "average", avg, "last", lastMean, "percent", measured)

		name := s.Name
		applyThresholds(measurement{
			measured: measured,
			defined:  true,
			levels:   cfg.AveragePercentLevels,
			render: func(m float64, comparison string, level float64) string {
				return fmt.Sprintf("%s is %.1f%% of its average (%s than %s%%)", name, m, comparison, formatValue(level))
			},
			okText: fmt.Sprintf("%s is %.1f%% of its average", name, measured),
		}, cfg, res)
	}

	return nil
}

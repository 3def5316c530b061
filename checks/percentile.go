package checks

import (
	"fmt"

	"github.com/iulianpascalau/graphite-check/common"
	"github.com/iulianpascalau/graphite-check/config"
	"github.com/iulianpascalau/graphite-check/stats"
)

// EvaluatePercentile measures each series as the mean of its most recent
// window expressed as a percentage of the configured percentile over all
// non-null datapoints. Null handling follows the average-percent check.
func EvaluatePercentile(target string, series []common.Series, cfg config.RunConfig, res *Result) error {
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

		pct, err := stats.Percentile(all, cfg.Percentile)
		if err != nil {
			return fmt.Errorf("%w for series %s", err, s.Name)
		}

		lastMean, _ := stats.Mean(s.LastNonNullValues(cfg.DataPoints))
		measured := lastMean / pct * 100
		rank := ordinal(cfg.Percentile)

		log.Debug("percentile check", "series", s.Name, "rank", rank, "percentile", pct, "last", lastMean, "percent", measured)

		name := s.Name
		applyThresholds(measurement{
			measured: measured,
			defined:  true,
			levels:   cfg.PercentileLevels,
			render: func(m float64, comparison string, level float64) string {
				return fmt.Sprintf("%s is %.1f%% of its %s percentile (%s than %s%%)", name, m, rank, comparison, formatValue(level))
			},
			okText: fmt.Sprintf("%s is %.1f%% of its %s percentile", name, measured, rank),
		}, cfg, res)
	}

	return nil
}

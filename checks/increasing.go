package checks

import (
	"fmt"
	"time"

	"github.com/iulianpascalau/graphite-check/common"
	"github.com/iulianpascalau/graphite-check/config"
	"github.com/iulianpascalau/graphite-check/stats"
)

// EvaluateIncreasing flags a series as critical when its maximum over
// completed buckets exceeds the recent mean by more than the acceptable diff
// percentage. Independently, unless ignore-nulls is set, it warns about
// series whose most recent non-null sample is older than the updated-since
// window.
func EvaluateIncreasing(series []common.Series, cfg config.RunConfig, now time.Time, res *Result) {
	for _, s := range series {
		evaluateIncreasingSeries(s, cfg, now, res)
	}
}

func evaluateIncreasingSeries(s common.Series, cfg config.RunConfig, now time.Time, res *Result) {
	// the last datapoint is an in-progress bucket, excluded from the max
	var completed []common.Datapoint
	if len(s.Datapoints) > 0 {
		completed = s.Datapoints[:len(s.Datapoints)-1]
	}

	lastMean, meanErr := stats.Mean(s.LastNonNullValues(cfg.DataPoints))

	if len(completed) == 0 || meanErr != nil {
		res.AddOK(fmt.Sprintf("%s has not enough data to compare", s.Name))
	} else {
		maxValue := maxWithNullAsZero(completed)
		allowed := lastMean * (1 + cfg.AcceptableDiffPercentage/100)

		log.Debug("increasing check", "series", s.Name, "max", maxValue, "last", lastMean, "allowed", allowed)

		if maxValue > allowed {
			res.AddCritical(fmt.Sprintf("%s max value %s is more than %s%% above the latest %s",
				s.Name, formatValue(maxValue), formatValue(cfg.AcceptableDiffPercentage), formatValue(lastMean)))
		} else {
			res.AddOK(fmt.Sprintf("%s is not increasing", s.Name))
		}
	}

	if cfg.IgnoreNulls {
		return
	}

	timestamp, found := s.LatestNonNullTimestamp()
	cutoff := now.Unix() - cfg.UpdatedSinceSeconds
	if !found || timestamp < cutoff {
		res.AddWarning(fmt.Sprintf("%s has not been updated for at least %d seconds", s.Name, cfg.UpdatedSinceSeconds))
	}
}

// maxWithNullAsZero keeps the historical behavior of the magnitude check:
// null buckets count as 0 instead of being excluded, unlike every other
// evaluator
func maxWithNullAsZero(datapoints []common.Datapoint) float64 {
	maxValue := 0.0
	if datapoints[0].Present {
		maxValue = datapoints[0].Value
	}

	for _, dp := range datapoints[1:] {
		value := 0.0
		if dp.Present {
			value = dp.Value
		}
		if value > maxValue {
			maxValue = value
		}
	}

	return maxValue
}

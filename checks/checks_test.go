package checks

import (
	"testing"
	"time"

	"github.com/iulianpascalau/graphite-check/common"
	"github.com/iulianpascalau/graphite-check/config"
	"github.com/iulianpascalau/graphite-check/threshold"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.RunConfig {
	return config.RunConfig{
		Host:                "graphite.local",
		Targets:             []string{"stats.web.requests"},
		Period:              "2hours",
		UpdatedSinceSeconds: 600,
		Percentile:          90,
		DataPoints:          1,
	}
}

func mustLevels(t *testing.T, spec string) threshold.Levels {
	levels, err := threshold.ParseLevels(spec)
	require.NoError(t, err)

	return levels
}

func seriesOf(name string, pairs ...[2]interface{}) common.Series {
	s := common.Series{Name: name}
	for _, pair := range pairs {
		dp := common.Datapoint{Timestamp: int64(pair[1].(int))}
		if pair[0] != nil {
			dp.Value = float64(pair[0].(int))
			dp.Present = true
		}
		s.Datapoints = append(s.Datapoints, dp)
	}

	return s
}

func TestOrdinal(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "90th", ordinal(90))
	assert.Equal(t, "1st", ordinal(1))
	assert.Equal(t, "52nd", ordinal(52))
	assert.Equal(t, "63rd", ordinal(63))
	assert.Equal(t, "11th", ordinal(11))
	assert.Equal(t, "12th", ordinal(12))
	assert.Equal(t, "13th", ordinal(13))
}

func TestEvaluateLast(t *testing.T) {
	t.Parallel()

	t.Run("zero series should error", func(t *testing.T) {
		res := &Result{}
		err := EvaluateLast("stats.web.requests", nil, testConfig(), res)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no series returned")
	})
	t.Run("null bucket is skipped when picking the last value", func(t *testing.T) {
		cfg := testConfig()
		cfg.LastLevels = mustLevels(t, "6")
		s := seriesOf("stats.web.requests", [2]interface{}{5, 100}, [2]interface{}{nil, 110}, [2]interface{}{7, 120})

		res := &Result{}
		err := EvaluateLast("stats.web.requests", []common.Series{s}, cfg, res)
		require.NoError(t, err)

		// measured is 7, the null at ts 110 is ignored
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "7")
		assert.Contains(t, res.Warnings[0], "greater")
	})
	t.Run("window averages the last n non-null values", func(t *testing.T) {
		cfg := testConfig()
		cfg.DataPoints = 2
		cfg.LastLevels = mustLevels(t, "100")
		s := seriesOf("a", [2]interface{}{2, 100}, [2]interface{}{nil, 110}, [2]interface{}{4, 120}, [2]interface{}{6, 130})

		res := &Result{}
		err := EvaluateLast("a", []common.Series{s}, cfg, res)
		require.NoError(t, err)

		assert.Empty(t, res.Warnings)
		require.Len(t, res.OKs, 1)
		assert.Equal(t, "a is 5", res.OKs[0])
	})
	t.Run("all-null series produces ok narrative and no breach", func(t *testing.T) {
		cfg := testConfig()
		cfg.LastLevels = mustLevels(t, "1,2,3")
		s := seriesOf("a", [2]interface{}{nil, 100}, [2]interface{}{nil, 110})

		res := &Result{}
		err := EvaluateLast("a", []common.Series{s}, cfg, res)
		require.NoError(t, err)

		assert.Empty(t, res.Warnings)
		assert.Empty(t, res.Criticals)
		assert.Empty(t, res.Fatals)
		require.Len(t, res.OKs, 1)
		assert.Contains(t, res.OKs[0], "no recent value")
	})
	t.Run("escalation picks the highest breached bucket first", func(t *testing.T) {
		cfg := testConfig()
		cfg.LastLevels = mustLevels(t, "10,20,30")
		s := seriesOf("a", [2]interface{}{50, 100})

		res := &Result{}
		err := EvaluateLast("a", []common.Series{s}, cfg, res)
		require.NoError(t, err)

		assert.Len(t, res.Fatals, 1)
		assert.Len(t, res.Criticals, 1)
		assert.Len(t, res.Warnings, 1)
	})
	t.Run("short output records only the most severe breach per series", func(t *testing.T) {
		cfg := testConfig()
		cfg.ShortOutput = true
		cfg.LastLevels = mustLevels(t, "10,20,30")
		s := seriesOf("a", [2]interface{}{50, 100})

		res := &Result{}
		err := EvaluateLast("a", []common.Series{s}, cfg, res)
		require.NoError(t, err)

		assert.Len(t, res.Fatals, 1)
		assert.Empty(t, res.Criticals)
		assert.Empty(t, res.Warnings)
	})
	t.Run("direction flag flips the breach sense", func(t *testing.T) {
		cfg := testConfig()
		cfg.GreaterThan = true
		cfg.LastLevels = mustLevels(t, "10")
		s := seriesOf("a", [2]interface{}{5, 100})

		res := &Result{}
		err := EvaluateLast("a", []common.Series{s}, cfg, res)
		require.NoError(t, err)

		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "less")
	})
}

func TestEvaluateAverage(t *testing.T) {
	t.Parallel()

	t.Run("zero series should error", func(t *testing.T) {
		res := &Result{}
		err := EvaluateAverage("a", nil, testConfig(), res)

		assert.Error(t, err)
	})
	t.Run("nulls are excluded from both sum and count", func(t *testing.T) {
		cfg := testConfig()
		cfg.AverageLevels = mustLevels(t, "100")
		s := seriesOf("a", [2]interface{}{2, 100}, [2]interface{}{4, 110}, [2]interface{}{nil, 120}, [2]interface{}{6, 130})

		res := &Result{}
		err := EvaluateAverage("a", []common.Series{s}, cfg, res)
		require.NoError(t, err)

		require.Len(t, res.OKs, 1)
		assert.Equal(t, "a averages 4", res.OKs[0])
	})
	t.Run("breach lands in critical for the error severity", func(t *testing.T) {
		cfg := testConfig()
		cfg.AverageLevels = mustLevels(t, ",3")
		s := seriesOf("a", [2]interface{}{2, 100}, [2]interface{}{4, 110}, [2]interface{}{6, 130})

		res := &Result{}
		err := EvaluateAverage("a", []common.Series{s}, cfg, res)
		require.NoError(t, err)

		require.Len(t, res.Criticals, 1)
		assert.Contains(t, res.Criticals[0], "averages 4")
		assert.Empty(t, res.Warnings)
	})
}

func TestEvaluateAveragePercent(t *testing.T) {
	t.Parallel()

	t.Run("zero series should error", func(t *testing.T) {
		res := &Result{}
		err := EvaluateAveragePercent("a", nil, testConfig(), res)

		assert.Error(t, err)
	})
	t.Run("ratio is rendered as a percentage", func(t *testing.T) {
		cfg := testConfig()
		cfg.AveragePercentLevels = mustLevels(t, "120")
		// average = 4, last = 6 -> 150%
		s := seriesOf("a", [2]interface{}{2, 100}, [2]interface{}{4, 110}, [2]interface{}{6, 120})

		res := &Result{}
		err := EvaluateAveragePercent("a", []common.Series{s}, cfg, res)
		require.NoError(t, err)

		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "150.0%")
		assert.Contains(t, res.Warnings[0], "greater")
	})
	t.Run("all-null series with ignore nulls is inapplicable", func(t *testing.T) {
		cfg := testConfig()
		cfg.IgnoreNulls = true
		cfg.AveragePercentLevels = mustLevels(t, "1,2,3")
		s := seriesOf("a", [2]interface{}{nil, 100}, [2]interface{}{nil, 110})

		res := &Result{}
		err := EvaluateAveragePercent("a", []common.Series{s}, cfg, res)
		require.NoError(t, err)

		assert.Empty(t, res.Warnings)
		assert.Empty(t, res.Criticals)
		assert.Empty(t, res.Fatals)
		require.Len(t, res.OKs, 1)
		assert.Contains(t, res.OKs[0], "no data to compare")
	})
	t.Run("all-null series without ignore nulls is an unknown outcome", func(t *testing.T) {
		cfg := testConfig()
		s := seriesOf("a", [2]interface{}{nil, 100})

		res := &Result{}
		err := EvaluateAveragePercent("a", []common.Series{s}, cfg, res)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "only null datapoints")
	})
}

func TestEvaluatePercentile(t *testing.T) {
	t.Parallel()

	t.Run("zero series should error", func(t *testing.T) {
		res := &Result{}
		err := EvaluatePercentile("a", nil, testConfig(), res)

		assert.Error(t, err)
	})
	t.Run("last value compared to the median", func(t *testing.T) {
		cfg := testConfig()
		cfg.Percentile = 50
		cfg.PercentileLevels = mustLevels(t, "120")
		// values 1..5, median 3, last 5 -> 166.7%
		s := seriesOf("a",
			[2]interface{}{1, 100}, [2]interface{}{2, 110}, [2]interface{}{3, 120},
			[2]interface{}{4, 130}, [2]interface{}{5, 140})

		res := &Result{}
		err := EvaluatePercentile("a", []common.Series{s}, cfg, res)
		require.NoError(t, err)

		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "166.7%")
		assert.Contains(t, res.Warnings[0], "50th percentile")
	})
	t.Run("all-null series with ignore nulls is inapplicable", func(t *testing.T) {
		cfg := testConfig()
		cfg.IgnoreNulls = true
		s := seriesOf("a", [2]interface{}{nil, 100})

		res := &Result{}
		err := EvaluatePercentile("a", []common.Series{s}, cfg, res)
		require.NoError(t, err)

		assert.Len(t, res.OKs, 1)
	})
	t.Run("all-null series without ignore nulls is an unknown outcome", func(t *testing.T) {
		cfg := testConfig()
		s := seriesOf("a", [2]interface{}{nil, 100})

		res := &Result{}
		err := EvaluatePercentile("a", []common.Series{s}, cfg, res)

		assert.Error(t, err)
	})
}

func TestEvaluateIncreasing(t *testing.T) {
	t.Parallel()

	now := time.Unix(1000, 0)

	t.Run("max over completed buckets above the latest mean is critical", func(t *testing.T) {
		cfg := testConfig()
		cfg.IgnoreNulls = true
		// completed buckets [3,5], last mean 2 -> 5 > 2*(1+0)
		s := seriesOf("a", [2]interface{}{3, 940}, [2]interface{}{5, 950}, [2]interface{}{2, 960})

		res := &Result{}
		EvaluateIncreasing([]common.Series{s}, cfg, now, res)

		require.Len(t, res.Criticals, 1)
		assert.Contains(t, res.Criticals[0], "max value 5")
		assert.Empty(t, res.OKs)
	})
	t.Run("acceptable diff percentage raises the allowed max", func(t *testing.T) {
		cfg := testConfig()
		cfg.IgnoreNulls = true
		cfg.AcceptableDiffPercentage = 200
		// allowed = 2 * 3 = 6, max 5 stays under
		s := seriesOf("a", [2]interface{}{3, 940}, [2]interface{}{5, 950}, [2]interface{}{2, 960})

		res := &Result{}
		EvaluateIncreasing([]common.Series{s}, cfg, now, res)

		assert.Empty(t, res.Criticals)
		require.Len(t, res.OKs, 1)
		assert.Contains(t, res.OKs[0], "not increasing")
	})
	t.Run("null bucket counts as zero in the max", func(t *testing.T) {
		cfg := testConfig()
		cfg.IgnoreNulls = true
		// completed buckets [null, null] -> max 0, last mean 4 -> no breach
		s := seriesOf("a", [2]interface{}{nil, 940}, [2]interface{}{nil, 950}, [2]interface{}{4, 960})

		res := &Result{}
		EvaluateIncreasing([]common.Series{s}, cfg, now, res)

		assert.Empty(t, res.Criticals)
		assert.Len(t, res.OKs, 1)
	})
	t.Run("stale series warns when ignore nulls is off", func(t *testing.T) {
		cfg := testConfig()
		// latest non-null at ts 300, cutoff = 1000 - 600 = 400
		s := seriesOf("a", [2]interface{}{1, 290}, [2]interface{}{2, 300}, [2]interface{}{nil, 950})

		res := &Result{}
		EvaluateIncreasing([]common.Series{s}, cfg, now, res)

		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "not been updated")
	})
	t.Run("fresh series does not warn", func(t *testing.T) {
		cfg := testConfig()
		s := seriesOf("a", [2]interface{}{1, 940}, [2]interface{}{2, 950}, [2]interface{}{2, 960})

		res := &Result{}
		EvaluateIncreasing([]common.Series{s}, cfg, now, res)

		assert.Empty(t, res.Warnings)
	})
	t.Run("ignore nulls disables the freshness warning", func(t *testing.T) {
		cfg := testConfig()
		cfg.IgnoreNulls = true
		s := seriesOf("a", [2]interface{}{1, 100}, [2]interface{}{2, 110}, [2]interface{}{2, 120})

		res := &Result{}
		EvaluateIncreasing([]common.Series{s}, cfg, now, res)

		assert.Empty(t, res.Warnings)
	})
	t.Run("all-null series warns about freshness", func(t *testing.T) {
		cfg := testConfig()
		s := seriesOf("a", [2]interface{}{nil, 940}, [2]interface{}{nil, 950})

		res := &Result{}
		EvaluateIncreasing([]common.Series{s}, cfg, now, res)

		assert.Len(t, res.Warnings, 1)
	})
	t.Run("single datapoint has nothing to compare", func(t *testing.T) {
		cfg := testConfig()
		cfg.IgnoreNulls = true
		s := seriesOf("a", [2]interface{}{5, 960})

		res := &Result{}
		EvaluateIncreasing([]common.Series{s}, cfg, now, res)

		assert.Empty(t, res.Criticals)
		require.Len(t, res.OKs, 1)
		assert.Contains(t, res.OKs[0], "not enough data")
	})
	t.Run("zero series yields no messages", func(t *testing.T) {
		res := &Result{}
		EvaluateIncreasing(nil, testConfig(), now, res)

		assert.Empty(t, res.Warnings)
		assert.Empty(t, res.Criticals)
		assert.Empty(t, res.OKs)
	})
}

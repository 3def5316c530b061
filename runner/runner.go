package runner

import (
	"context"
	"errors"
	"time"

	"github.com/iulianpascalau/graphite-check/checks"
	"github.com/iulianpascalau/graphite-check/config"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("runner")

// checkRunner walks the configured targets in order and runs every enabled
// check for each one before moving to the next. All four message buckets
// accumulate across the whole run.
type checkRunner struct {
	cfg     config.RunConfig
	fetcher Fetcher
	nowFunc func() time.Time
}

// NewCheckRunner creates a new run orchestrator
func NewCheckRunner(cfg config.RunConfig, fetcher Fetcher) (*checkRunner, error) {
	if check.IfNil(fetcher) {
		return nil, errors.New("nil fetcher")
	}

	return &checkRunner{
		cfg:     cfg,
		fetcher: fetcher,
		nowFunc: time.Now,
	}, nil
}

// Run fetches each target once and applies the enabled checks in fixed order:
// increasing, last, average, average-percent, percentile. The first fetch or
// evaluation failure aborts the whole run.
func (r *checkRunner) Run(ctx context.Context) (*checks.Result, error) {
	result := &checks.Result{}

	for _, target := range r.cfg.Targets {
		series, err := r.fetcher.Fetch(ctx, target)
		if err != nil {
			return nil, err
		}

		log.Debug("evaluating target", "target", target, "series", len(series))

		if r.cfg.CheckIncreasing {
			checks.EvaluateIncreasing(series, r.cfg, r.nowFunc(), result)
		}
		if r.cfg.CheckLast {
			err = checks.EvaluateLast(target, series, r.cfg, result)
			if err != nil {
				return nil, err
			}
		}
		if r.cfg.CheckAverage {
			err = checks.EvaluateAverage(target, series, r.cfg, result)
			if err != nil {
				return nil, err
			}
		}
		if r.cfg.CheckAveragePercent {
			err = checks.EvaluateAveragePercent(target, series, r.cfg, result)
			if err != nil {
				return nil, err
			}
		}
		if r.cfg.CheckPercentile {
			err = checks.EvaluatePercentile(target, series, r.cfg, result)
			if err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (r *checkRunner) IsInterfaceNil() bool {
	return r == nil
}

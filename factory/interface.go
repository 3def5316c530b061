package factory

import (
	"context"

	"github.com/iulianpascalau/graphite-check/checks"
)

// Runner defines the run orchestrator's operations
type Runner interface {
	Run(ctx context.Context) (*checks.Result, error)
	IsInterfaceNil() bool
}

package runner

import (
	"context"

	"github.com/iulianpascalau/graphite-check/common"
)

// Fetcher defines the interface for retrieving decoded series per target.
// Implementations cache per target within one run, so every check kind
// requested for the same target reuses the same decoded result.
type Fetcher interface {
	Fetch(ctx context.Context, target string) ([]common.Series, error)

	IsInterfaceNil() bool
}

package testsCommon

import (
	"context"

	"github.com/iulianpascalau/graphite-check/common"
)

// FetcherStub -
type FetcherStub struct {
	FetchHandler func(ctx context.Context, target string) ([]common.Series, error)
}

// Fetch -
func (stub *FetcherStub) Fetch(ctx context.Context, target string) ([]common.Series, error) {
	if stub.FetchHandler != nil {
		return stub.FetchHandler(ctx, target)
	}

	return nil, nil
}

// IsInterfaceNil -
func (stub *FetcherStub) IsInterfaceNil() bool {
	return stub == nil
}

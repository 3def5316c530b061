package factory

import (
	"time"

	"github.com/iulianpascalau/graphite-check/config"
	"github.com/iulianpascalau/graphite-check/graphite"
	"github.com/iulianpascalau/graphite-check/runner"
)

// fetchTimeout bounds the whole backend call, connect and read included
const fetchTimeout = 20 * time.Second

type componentsHandler struct {
	fetcher runner.Fetcher
	runner  Runner
}

// NewComponentsHandler creates the fetcher and the run orchestrator for one
// evaluation run
func NewComponentsHandler(cfg config.RunConfig) (*componentsHandler, error) {
	fetcher, err := graphite.NewHTTPFetcher(graphite.ArgsHTTPFetcher{
		Host:     cfg.Host,
		Period:   cfg.Period,
		Username: cfg.Username,
		Password: cfg.Password,
		Timeout:  fetchTimeout,
	})
	if err != nil {
		return nil, err
	}

	checkRunner, err := runner.NewCheckRunner(cfg, fetcher)
	if err != nil {
		return nil, err
	}

	return &componentsHandler{
		fetcher: fetcher,
		runner:  checkRunner,
	}, nil
}

// GetFetcher returns the fetcher component
func (ch *componentsHandler) GetFetcher() runner.Fetcher {
	return ch.fetcher
}

// GetRunner returns the run orchestrator component
func (ch *componentsHandler) GetRunner() Runner {
	return ch.runner
}

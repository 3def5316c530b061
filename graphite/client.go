package graphite

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iulianpascalau/graphite-check/common"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("graphite")

const renderPath = "/render/"

// ArgsHTTPFetcher defines the HTTP fetcher arguments
type ArgsHTTPFetcher struct {
	Host     string
	Period   string
	Username string
	Password string
	Timeout  time.Duration
}

// httpFetcher fetches and decodes series from the backend's render endpoint.
// Results are memoized per target for the lifetime of the fetcher, so one
// fetcher instance must not outlive a single evaluation run.
type httpFetcher struct {
	client   *http.Client
	endpoint string
	period   string
	username string
	password string
	cache    map[string][]common.Series
}

// NewHTTPFetcher creates a new HTTP-based fetcher with a per-run result cache
func NewHTTPFetcher(args ArgsHTTPFetcher) (*httpFetcher, error) {
	if len(args.Host) == 0 {
		return nil, errors.New("empty host")
	}

	return &httpFetcher{
		client: &http.Client{
			Timeout: args.Timeout,
		},
		endpoint: normalizeHost(args.Host) + renderPath,
		period:   args.Period,
		username: args.Username,
		password: args.Password,
		cache:    make(map[string][]common.Series),
	}, nil
}

// normalizeHost defaults the scheme to http:// when none was given
func normalizeHost(host string) string {
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}

	return strings.TrimSuffix(host, "/")
}

// Fetch returns the decoded series for the provided target. The first call
// per target performs the POST, subsequent calls within the same run reuse
// the decoded result.
func (f *httpFetcher) Fetch(ctx context.Context, target string) ([]common.Series, error) {
	cached, found := f.cache[target]
	if found {
		log.Debug("cache hit", "target", target)
		return cached, nil
	}

	series, err := f.fetchTarget(ctx, target)
	if err != nil {
		return nil, err
	}

	f.cache[target] = series

	return series, nil
}

func (f *httpFetcher) fetchTarget(ctx context.Context, target string) ([]common.Series, error) {
	form := url.Values{}
	form.Set("target", target)
	form.Set("from", "-"+f.period)
	form.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if len(f.username) > 0 {
		req.SetBasicAuth(f.username, f.password)
	}

	log.Debug("querying render endpoint", "url", f.endpoint, "target", target, "from", "-"+f.period)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errStatusNotOK(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	series, err := decodeRenderResponse(body)
	if err != nil {
		return nil, err
	}

	log.Debug("decoded render response", "target", target, "series", len(series))

	return series, nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (f *httpFetcher) IsInterfaceNil() bool {
	return f == nil
}

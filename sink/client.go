// Package sink implements HTTP-backed Source and Terminal processors: a
// node that POSTs its input to an external endpoint, and a node that polls
// one for new data. Client construction (proxy, TLS, retry policy) is
// adapted from the teacher's rest/http.go initHTTPClient; the
// poll-and-backoff shape of HTTPPollSource is adapted from
// apispec/run.go's pollSpecUntilReady.
package sink

import (
	"crypto/tls"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/jpillora/backoff"

	"github.com/flowgraph/flowgraph/printer"
)

// Config controls the shared HTTP client every sink processor in a graph
// uses. The runtime treats an HTTP endpoint as external state (spec.md §1
// "out of scope" collaborators), but a resilient client is still this
// repo's own responsibility, same as every other ambient concern.
type Config struct {
	ProxyAddress             string
	PermitInvalidCertificate bool
	RetryWaitMin             time.Duration
	RetryWaitMax             time.Duration
	RetryMax                 int
}

// DefaultConfig mirrors the teacher's own rest/http.go retry constants.
func DefaultConfig() Config {
	return Config{
		RetryWaitMin: 100 * time.Millisecond,
		RetryWaitMax: 1 * time.Second,
		RetryMax:     3,
	}
}

// printerLogger implements retryablehttp.LeveledLogger using this repo's
// own printer facility instead of go-retryablehttp's default stdlib logger,
// the same substitution the teacher makes in rest/http.go.
type printerLogger struct{}

func (printerLogger) Error(f string, args ...interface{}) { printer.Stderr.Errorf(f+"\n", args...) }
func (printerLogger) Info(f string, args ...interface{})  { printer.Stderr.Infof(f+"\n", args...) }
func (printerLogger) Debug(f string, args ...interface{}) { printer.Stderr.Debugf(f+"\n", args...) }
func (printerLogger) Warn(f string, args ...interface{})  { printer.Stderr.Warningf(f+"\n", args...) }

// NewClient builds a retryablehttp.Client per cfg, with proxy and TLS
// settings applied to its transport the way rest/http.go's initHTTPClient
// configures the teacher's own shared client.
func NewClient(cfg Config) *retryablehttp.Client {
	client := retryablehttp.NewClient()

	transport := &http.Transport{
		MaxIdleConns:    3,
		IdleConnTimeout: 60 * time.Second,
	}
	if cfg.ProxyAddress != "" {
		if proxyURL, err := url.Parse(cfg.ProxyAddress); err == nil {
			transport.Proxy = func(*http.Request) (*url.URL, error) { return proxyURL, nil }
		}
	}
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: cfg.PermitInvalidCertificate}

	client.HTTPClient = &http.Client{Transport: transport}
	client.RetryWaitMin = cfg.RetryWaitMin
	client.RetryWaitMax = cfg.RetryWaitMax
	client.RetryMax = cfg.RetryMax
	client.Logger = printerLogger{}
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return client
}

// NewPollBackoff returns the poll-until-ready backoff policy HTTPPollSource
// waits out between not-ready responses, the same field shape as
// apispec/run.go's pollSpecUntilReady (Min/Max/Factor/Jitter).
func NewPollBackoff() *backoff.Backoff {
	return &backoff.Backoff{
		Min:    200 * time.Millisecond,
		Max:    10 * time.Second,
		Factor: 1.5,
		Jitter: true,
	}
}

package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"

	"github.com/flowgraph/flowgraph/workqueue"
)

// HTTPTerminal is a Terminal processor that POSTs the lead packet of each
// input tuple as JSON to URL. Transient failures are retried by Client's
// own RetryMax/RetryWait* policy; a send that exhausts retries is
// surfaced as a processor error, which the consumer thread logs and moves
// the node to Terminating (spec.md §7) -- an HTTP sink does not itself
// define an end-of-stream condition.
type HTTPTerminal struct {
	Client *retryablehttp.Client
	URL    string
}

// Handle implements worker.TerminalProcessor.
func (t *HTTPTerminal) Handle(ctx context.Context, in workqueue.Tuple) error {
	body, err := json.Marshal(in[0].Payload)
	if err != nil {
		return errors.Wrap(err, "sink: failed to marshal packet payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.URL, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "sink: failed to build request")
	}
	req.Header.Set("content-type", "application/json")

	retryableReq, err := retryablehttp.FromRequest(req)
	if err != nil {
		return errors.Wrap(err, "sink: failed to convert request into a retryable request")
	}

	resp, err := t.Client.Do(retryableReq)
	if err != nil {
		return errors.Wrapf(err, "sink: POST %s failed", t.URL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Errorf("sink: POST %s returned status %d", t.URL, resp.StatusCode)
	}
	return nil
}

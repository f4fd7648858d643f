package sink

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/jpillora/backoff"
	"github.com/pkg/errors"

	"github.com/flowgraph/flowgraph/packet"
	"github.com/flowgraph/flowgraph/writer"
)

// HTTPPollSource is a Source processor that GETs URL on every Handle call
// and emits one packet per successful poll. A 202/204 response means "not
// ready yet": Handle waits out Backoff.Duration() and returns without
// writing, so the next graph tick retries -- the poll-until-ready shape of
// apispec/run.go's pollSpecUntilReady, adapted to one non-blocking Handle
// call per tick since the graph runtime already supplies the retry loop
// via repeated Source dispatch (spec.md §4.G).
type HTTPPollSource struct {
	Client  *retryablehttp.Client
	URL     string
	Channel packet.ChannelID
	Backoff *backoff.Backoff

	next uint64
}

// Handle implements worker.SourceProcessor.
func (s *HTTPPollSource) Handle(ctx context.Context, w *writer.WriteChannel) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return errors.Wrap(err, "sink: failed to build poll request")
	}

	retryableReq, err := retryablehttp.FromRequest(req)
	if err != nil {
		return errors.Wrap(err, "sink: failed to convert request into a retryable request")
	}

	resp, err := s.Client.Do(retryableReq)
	if err != nil {
		return errors.Wrapf(err, "sink: GET %s failed", s.URL)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusAccepted {
		time.Sleep(s.Backoff.Duration())
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Errorf("sink: GET %s returned status %d", s.URL, resp.StatusCode)
	}
	s.Backoff.Reset()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "sink: failed to read poll response")
	}

	var payload interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return errors.Wrap(err, "sink: failed to unmarshal poll response")
	}

	s.next++
	return w.Write(s.Channel, packet.NewUntyped(packet.DataVersion(s.next), payload))
}

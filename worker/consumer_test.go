package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowgraph/flowgraph/lifecycle"
	"github.com/flowgraph/flowgraph/packet"
	"github.com/flowgraph/flowgraph/workerpool"
	"github.com/flowgraph/flowgraph/workqueue"
	"github.com/flowgraph/flowgraph/writer"
)

type fakeDoneSender struct {
	mu  sync.Mutex
	ids []string
}

func (f *fakeDoneSender) Send(nodeID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = append(f.ids, nodeID)
}

func (f *fakeDoneSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ids)
}

type recordingTerminal struct {
	mu       sync.Mutex
	versions []packet.DataVersion
	failOn   packet.DataVersion
}

func (t *recordingTerminal) Handle(ctx context.Context, in workqueue.Tuple) error {
	v := in[0].Version
	if v == t.failOn {
		panic("synthetic panic for S6")
	}
	t.mu.Lock()
	t.versions = append(t.versions, v)
	t.mu.Unlock()
	return nil
}

func (t *recordingTerminal) seen() []packet.DataVersion {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]packet.DataVersion(nil), t.versions...)
}

func newTestConsumer(w *ProcessorWorker, status *lifecycle.GraphStatus, done DoneSender) *ConsumerThread {
	return &ConsumerThread{
		Worker:      w,
		GraphStatus: status,
		DoneTx:      done,
		Pool:        workerpool.New(4),
		PullTimeout: 10 * time.Millisecond,
		IdleSleep:   10 * time.Millisecond,
	}
}

func TestConsumerProcessesTuplesInOrderAndSurvivesPanic(t *testing.T) {
	// S6: a processor that panics on one version still lets the node
	// process everything else.
	term := &recordingTerminal{failOn: 5}
	wq := workqueue.New(16)
	w := NewTerminal("terminal", term, wq)

	status := lifecycle.NewGraphStatus()
	done := &fakeDoneSender{}
	ct := newTestConsumer(w, status, done)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer status.Store(lifecycle.Terminating)

	go ct.Consume(ctx)

	for v := 1; v <= 10; v++ {
		wq.Push(workqueue.Tuple{packet.NewUntyped(packet.DataVersion(v), v)})
	}

	require.Eventually(t, func() bool {
		return len(term.seen()) == 9
	}, time.Second, 5*time.Millisecond)

	seen := term.seen()
	expect := []packet.DataVersion{1, 2, 3, 4, 6, 7, 8, 9, 10}
	assert.Equal(t, expect, seen)
	assert.Equal(t, lifecycle.Idle, w.Status.Load(), "node must return to Idle after a single panic")
}

type endOfStreamSource struct {
	n, max int
	wrote  []int
}

func (s *endOfStreamSource) Handle(ctx context.Context, w *writer.WriteChannel) error {
	if s.n >= s.max {
		return ErrEndOfStream
	}
	s.n++
	s.wrote = append(s.wrote, s.n)
	return nil
}

func TestConsumerSourceEndOfStreamTerminatesAndNotifiesDone(t *testing.T) {
	src := &endOfStreamSource{max: 10}
	w := NewSource("source", src, writer.New())

	status := lifecycle.NewGraphStatus()
	done := &fakeDoneSender{}
	ct := newTestConsumer(w, status, done)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ct.Consume(ctx)

	require.Eventually(t, func() bool {
		return w.Status.Load() == lifecycle.WorkerTerminating
	}, time.Second, 5*time.Millisecond)

	status.Store(lifecycle.Terminating)

	assert.Equal(t, 10, len(src.wrote))
	assert.GreaterOrEqual(t, done.count(), 1)
}

func TestConsumerSendsDoneRepeatedlyWhileDraining(t *testing.T) {
	wq := workqueue.New(1)
	w := NewTerminal("terminal", &recordingTerminal{}, wq)

	status := lifecycle.NewGraphStatus()
	status.Store(lifecycle.WaitingForDataToTerminate)
	done := &fakeDoneSender{}
	ct := newTestConsumer(w, status, done)

	ctx, cancel := context.WithCancel(context.Background())
	go ct.Consume(ctx)

	require.Eventually(t, func() bool {
		return done.count() >= 2
	}, time.Second, 5*time.Millisecond)

	status.Store(lifecycle.Terminating)
	cancel()
}

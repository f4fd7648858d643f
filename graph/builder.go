package graph

import (
	"github.com/pkg/errors"

	"github.com/flowgraph/flowgraph/assembler"
	"github.com/flowgraph/flowgraph/lifecycle"
	"github.com/flowgraph/flowgraph/packet"
	"github.com/flowgraph/flowgraph/printer"
	"github.com/flowgraph/flowgraph/queue"
	"github.com/flowgraph/flowgraph/runtimeconfig"
	"github.com/flowgraph/flowgraph/worker"
	"github.com/flowgraph/flowgraph/writer"
)

type nodeSpec struct {
	id      NodeID
	kind    worker.Kind
	source  worker.SourceProcessor
	xform   worker.TransformProcessor
	term    worker.TerminalProcessor
	inputs  []packet.ChannelID
	outputs []packet.ChannelID
	policy  assembler.Policy
}

// Builder wires nodes and the channels between them into a runnable Graph.
// Nodes are added in any order; Build resolves producer/consumer pairing
// by channel id and fails closed if an input channel has no producer
// (spec.md's Non-goal of "dynamic reconfiguration after start" makes this
// a build-time-only concern -- a Graph's wiring is fixed once Build
// returns).
type Builder struct {
	cfg   runtimeconfig.Config
	specs []nodeSpec
}

// NewBuilder constructs a Builder using cfg for every node's buffer size,
// work-queue capacity, and timings.
func NewBuilder(cfg runtimeconfig.Config) *Builder {
	return &Builder{cfg: cfg}
}

// AddSource registers a Source-variant node producing onto outputs.
func (b *Builder) AddSource(id NodeID, p worker.SourceProcessor, outputs ...packet.ChannelID) *Builder {
	b.specs = append(b.specs, nodeSpec{id: id, kind: worker.Source, source: p, outputs: outputs})
	return b
}

// AddTransform registers a Transform-variant node reading inputs (in bind
// order) and producing onto outputs. policy overrides the default
// version-exact assembly policy if non-nil.
func (b *Builder) AddTransform(id NodeID, p worker.TransformProcessor, inputs, outputs []packet.ChannelID, policy assembler.Policy) *Builder {
	b.specs = append(b.specs, nodeSpec{id: id, kind: worker.Transform, xform: p, inputs: inputs, outputs: outputs, policy: policy})
	return b
}

// AddTerminal registers a Terminal-variant node reading inputs (in bind
// order) and producing nothing.
func (b *Builder) AddTerminal(id NodeID, p worker.TerminalProcessor, inputs []packet.ChannelID, policy assembler.Policy) *Builder {
	b.specs = append(b.specs, nodeSpec{id: id, kind: worker.Terminal, term: p, inputs: inputs, policy: policy})
	return b
}

// Build resolves channel wiring and constructs a runnable Graph.
func (b *Builder) Build() (*Graph, error) {
	if len(b.specs) == 0 {
		return nil, ErrNoNodes
	}

	seen := make(map[NodeID]struct{}, len(b.specs))
	producers := make(map[packet.ChannelID]NodeID)
	for _, s := range b.specs {
		if _, dup := seen[s.id]; dup {
			return nil, errors.Wrapf(ErrDuplicateNode, "%s", s.id)
		}
		seen[s.id] = struct{}{}
		for _, c := range s.outputs {
			producers[c] = s.id
		}
	}

	writeChannels := make(map[NodeID]*writer.WriteChannel, len(b.specs))
	for _, s := range b.specs {
		if s.kind != worker.Terminal {
			writeChannels[s.id] = writer.New()
		}
	}

	readChannels := make(map[NodeID]*assembler.ReadChannel, len(b.specs))
	for _, s := range b.specs {
		if len(s.inputs) == 0 {
			continue
		}
		for _, c := range s.inputs {
			if _, ok := producers[c]; !ok {
				return nil, errors.Wrapf(ErrUnboundChannel, "node %s, channel %s", s.id, c)
			}
		}
		readChannels[s.id] = assembler.New(s.inputs, b.cfg.MaxSize, b.cfg.WorkQueueCapacity, s.policy)
	}

	// Wire a fresh queue per (producer, channel, consumer) triple so the
	// producer's WriteChannel fans out independently to every consumer
	// bound to that channel id.
	for _, s := range b.specs {
		rc, hasInputs := readChannels[s.id]
		if !hasInputs {
			continue
		}
		for _, c := range s.inputs {
			producerID := producers[c]
			sender, receiver := queue.New()
			writeChannels[producerID].AddSender(c, sender)
			rc.AddReceiver(c, receiver)
		}
	}

	nodes := make(map[NodeID]*registeredNode, len(b.specs))
	for _, s := range b.specs {
		var w *worker.ProcessorWorker
		switch s.kind {
		case worker.Source:
			w = worker.NewSource(string(s.id), s.source, writeChannels[s.id])
		case worker.Transform:
			w = worker.NewTransform(string(s.id), s.xform, readChannels[s.id].WorkQueue(), writeChannels[s.id])
		case worker.Terminal:
			w = worker.NewTerminal(string(s.id), s.term, readChannels[s.id].WorkQueue())
		}
		nodes[s.id] = &registeredNode{
			id:          s.id,
			readChannel: readChannels[s.id],
			worker:      w,
		}
	}

	g := &Graph{
		status: lifecycle.NewGraphStatus(),
		cfg:    b.cfg,
		nodes:  nodes,
		log:    printer.Stderr,
	}
	g.bus = newDoneBus(len(nodes), func() { g.status.Store(lifecycle.Terminating) })
	return g, nil
}

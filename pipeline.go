// Copyright 2026 The conduit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package conduit

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gogama/conduit/request"
)

// Usage errors returned by Pipeline.Run when the pipeline is not in the
// open state. They indicate a programming error in the caller, never a
// transport failure.
var (
	// ErrNotOpened is returned by Run on a pipeline whose Open method
	// has not been called yet.
	ErrNotOpened = errors.New("conduit: pipeline not opened")
	// ErrClosed is returned by Run on a pipeline that has been closed,
	// and by Open on a pipeline that has already been closed.
	ErrClosed = errors.New("conduit: pipeline closed")
)

// Pipeline states. A pipeline moves strictly forward: unopened at
// construction, open after Open, closed after Close.
const (
	stateUnopened int32 = iota
	stateOpen
	stateClosed
)

// A node is one link in a pipeline's policy chain. Its successor is
// assigned during pipeline construction and never changes, so the chain
// is linear and acyclic for the pipeline's whole lifetime.
type node struct {
	policy Policy
	next   Sender
}

func (n *node) Send(req *request.Request) (*request.Response, error) {
	return n.policy.Send(req, n.next)
}

// A Pipeline owns an ordered chain of policies terminating at a
// transport, and the transport's resource lifecycle. Construct it with
// New, call Open before the first Run, and Close when finished.
//
// The chain topology is fixed at construction. Policy instances and the
// pipeline itself are reused across many runs; a request and response
// live for a single run only.
//
// Once open, a Pipeline is safe for concurrent use by multiple
// goroutines: independent Run calls may overlap arbitrarily. Open and
// Close must not be called concurrently with each other. Policy state
// shared across runs (counters, caches) must use its own
// synchronization; the pipeline provides no locking.
type Pipeline struct {
	transport Transport
	first     Sender
	state     int32
}

// New constructs a pipeline from a transport and an ordered list of
// stages. Each stage must implement Policy or QuickPolicy; QuickPolicy
// stages are wrapped so that they run as full policies, preserving
// list order. A value implementing both contracts is installed as a
// Policy.
//
// The first stage in the list is the outermost: it sees the request
// first and the response last. The last stage forwards to the
// transport. With no stages at all, Run routes directly to the
// transport.
//
// New returns an error if transport is nil or any stage is nil or of
// an unsupported type. The returned pipeline is unopened; call Open
// before Run.
func New(transport Transport, stages ...interface{}) (*Pipeline, error) {
	if transport == nil {
		return nil, errors.New("conduit: nil transport")
	}
	nodes := make([]*node, len(stages))
	for i, s := range stages {
		switch x := s.(type) {
		case Policy:
			nodes[i] = &node{policy: x}
		case QuickPolicy:
			nodes[i] = &node{policy: quickRunner{policy: x}}
		case nil:
			return nil, fmt.Errorf("conduit: nil stage at index %d", i)
		default:
			return nil, fmt.Errorf("conduit: stage at index %d has type %T, want Policy or QuickPolicy", i, s)
		}
	}
	for i := range nodes {
		if i+1 < len(nodes) {
			nodes[i].next = nodes[i+1]
		} else {
			nodes[i].next = transport
		}
	}
	p := &Pipeline{transport: transport}
	if len(nodes) > 0 {
		p.first = nodes[0]
	} else {
		p.first = transport
	}
	return p, nil
}

// Open moves the pipeline to the open state, delegating resource
// acquisition to the transport's Open method. Opening an already open
// pipeline is a no-op; opening a closed pipeline returns ErrClosed.
//
// If the transport fails to open, the pipeline stays unopened and the
// transport's error is returned.
func (p *Pipeline) Open() error {
	if !atomic.CompareAndSwapInt32(&p.state, stateUnopened, stateOpen) {
		if atomic.LoadInt32(&p.state) == stateOpen {
			return nil
		}
		return ErrClosed
	}
	if err := p.transport.Open(); err != nil {
		atomic.StoreInt32(&p.state, stateUnopened)
		return err
	}
	return nil
}

// Close moves the pipeline to the closed state, delegating resource
// release to the transport's Close method. Closing an already closed
// pipeline is a no-op. Closing a pipeline that was never opened marks
// it closed without touching the transport, since nothing was
// acquired.
//
// After Close, Run returns ErrClosed.
func (p *Pipeline) Close() error {
	if atomic.CompareAndSwapInt32(&p.state, stateUnopened, stateClosed) {
		return nil
	}
	if !atomic.CompareAndSwapInt32(&p.state, stateOpen, stateClosed) {
		return nil
	}
	return p.transport.Close()
}

// Run sends a request through the pipeline and returns the response
// that bubbles back.
//
// Run first attaches the transport's BuildContext result to the
// request, making it visible to every policy for the duration of the
// run, then invokes the first policy in the chain (or the transport
// directly, if the pipeline has no policies).
//
// Run does not retry, log, or transform errors; those behaviors belong
// to installed policies. A transport or policy error propagates to the
// caller unchanged.
//
// Run is only valid while the pipeline is open. Calling it before Open
// returns ErrNotOpened; calling it after Close returns ErrClosed.
func (p *Pipeline) Run(req *request.Request) (*request.Response, error) {
	if req == nil {
		panic("conduit: nil request")
	}
	switch atomic.LoadInt32(&p.state) {
	case stateUnopened:
		return nil, ErrNotOpened
	case stateClosed:
		return nil, ErrClosed
	}
	req.SetPipelineContext(p.transport.BuildContext())
	return p.first.Send(req)
}

// Copyright 2026 The conduit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package conduit provides a composable HTTP request pipeline: an ordered
chain of policies which inspect, mutate, or short-circuit an HTTP
request/response exchange before a terminal transport dispatches it over
the network.

Create a pipeline from a transport and a list of policies, open it, and
run requests through it.

	tr := transport.New()
	p, err := conduit.New(tr,
		requestid.New(),
		retry.New(retry.DefaultDecider, retry.DefaultWaiter),
	)
	...
	err = p.Open()
	defer p.Close()
	req, err := request.New("GET", "https://www.example.com", nil)
	...
	resp, err := p.Run(req)

Each stage in the pipeline is either a full Policy, which controls
whether and how the exchange is forwarded to the next stage, or a
QuickPolicy, which only observes the request before forwarding and the
response after. QuickPolicies are wrapped by the pipeline so both
flavors can be mixed freely in one policy list.

The pipeline owns no behavior of its own beyond chain topology and the
transport's resource lifecycle: it does not retry, log, or transform
errors. Those behaviors belong to the policies the caller installs.
Packages retry, timeout, logging, and requestid provide ready-made
policies; package transport provides a net/http-backed terminal
transport.

A Pipeline is safe for concurrent use by multiple goroutines once it
has been opened: independent Run invocations may overlap arbitrarily,
while Open and Close must not be called concurrently with each other.
*/
package conduit

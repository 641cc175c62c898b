// Copyright 2026 The conduit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package request contains the data carriers threaded through a
// conduit pipeline: the outgoing Request and the incoming Response.
//
// A Request and the Response produced for it live for a single
// pipeline run and are shared, mutably, by every stage of that run.
// Neither is safe for concurrent use; within one run the pipeline
// invokes stages strictly sequentially, so no extra synchronization is
// needed.
package request

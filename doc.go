/*
Package orderedindex offers an in-memory ordered index for interactive
applications, built on a B-tree.

Orderedindex

The heavy lifting is done by package btree, which implements a classic
B-tree of configurable minimum degree: keys are kept sorted, inserting an
existing key replaces its value, and all operations touch O(log n) nodes.
Package btree itself is not synchronized.

Applications which display a tree (widgets, consoles, debugging views)
usually hold one tree for the lifetime of a view and re-render after every
change. Type Index serves this use: it owns a single tree, serializes calls to
it, and broadcasts a change event after every successful mutation. Observers
subscribe to these events and re-render from a fresh dump of the tree,
e.g. with package formatter (console), package html (HTML snapshots) or
Tree2Dot (Graphviz).

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–24, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package orderedindex

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

// T traces to a global core-tracer, falling back to the standard logger.
func T() tracing.Trace {
	if gtrace.CoreTracer == nil {
		tracer := gologadapter.New()
		tracer.SetTraceLevel(tracing.LevelError)
		gtrace.CoreTracer = tracer
	}
	return gtrace.CoreTracer
}

// IndexError is an error type for the orderedindex module
type IndexError string

func (e IndexError) Error() string {
	return string(e)
}

// ErrIndexClosed signals that an index has been closed and no longer
// broadcasts changes.
const ErrIndexClosed = IndexError("index has been closed")

// ErrIllegalArguments is flagged whenever function parameters are invalid.
const ErrIllegalArguments = IndexError("illegal arguments")

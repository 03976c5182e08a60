// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package ldm

import "github.com/sirupsen/logrus"

// Option configures a Context at construction time, following the
// functional-options idiom (c.f. CompressOptions/DecompressOptions in the
// sibling lzo package this module started from).
type Option func(*Context)

// WithLogger attaches a structured logger. Unset, a Context logs nothing —
// the hot path (GenerateSequences) never allocates or formats a message
// unless a logger has been attached. Grounded on grafana-k6's
// cloudapi.Client, which takes its logger the same way via a constructor
// parameter rather than a global.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Context) {
		c.logger = logger
	}
}

// WithMaxChunkSize overrides the default 1<<20 byte chunk size used to
// bound a single GenerateSequences pass (spec §6: "Chunk size: 1 << 20
// bytes"). Exposed for tests that want to exercise chunk-boundary
// behaviour (Testable Property 1) without 1 MiB of input.
func WithMaxChunkSize(n int) Option {
	return func(c *Context) {
		if n > 0 {
			c.maxChunkSize = n
		}
	}
}

// Package kernel contains shared value objects for the dispatch domain:
// identifiers, geographic points, and the great-circle distance used by
// zone containment and order batching. Everything here is immutable and
// safe for concurrent use.
package kernel

// Package artifact owns the per-owner state of one artifact: its tree, the
// current node, cooldown bookkeeping and the record of capabilities attached
// by the current node.
//
// All operations are synchronous and run to completion. An Artifact is not
// safe for concurrent use; distinct artifacts share nothing.
package artifact

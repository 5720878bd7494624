// Package registry maps the capability names used in descriptor catalogs to
// the Go factories that implement them.
//
// Modules register their capabilities at startup. The registry also holds the
// loaded catalog and is validated against it, so a descriptor that names a
// capability without a Go implementation (or with a configuration the Go type
// cannot accept) is rejected before any artifact is generated.
package registry

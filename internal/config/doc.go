// Package config defines the format-agnostic model of the descriptor
// catalogs (triggers and effects) and the Loader interface that concrete
// formats implement.
//
// The Catalog is the single source of truth for the generator, which draws
// descriptor names from it, and for the artifact, which resolves those names
// back into capability specs when a node is entered. The HCL implementation
// lives in the hcl package.
package config

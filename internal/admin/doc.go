// Package admin implements the debugging and balancing commands used by
// operators: forcing node transitions, editing a live tree, printing its
// adjacency matrix and estimating research value across many artifacts.
package admin

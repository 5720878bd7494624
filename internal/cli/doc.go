// Package cli builds the xenoarch command tree. It resolves the application
// configuration from environment variables and flags and hands off to the app
// package; it holds no domain logic of its own.
package cli

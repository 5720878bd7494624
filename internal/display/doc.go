// Package display is the scanner display surface. The Hub pushes flushed
// scanner snapshots to socket.io clients and Watch is the matching client used
// by operators to follow an artifact's triggered nodes.
package display

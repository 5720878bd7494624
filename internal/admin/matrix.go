package admin

import (
	"fmt"
	"strings"

	"github.com/vk/xenoarch/internal/artifact"
)

// PrintMatrix renders the adjacency matrix of the artifact's live nodes. Rows
// and columns are numbered in arena order; the legend maps numbers to ids.
func PrintMatrix(a *artifact.Artifact) string {
	ids, m := a.Tree.Matrix()
	n := len(ids)

	var sb strings.Builder
	filler := func() {
		sb.WriteString("\n--+")
		sb.WriteString(strings.Repeat("---+", n))
	}

	sb.WriteString("\n  |")
	for i := range n {
		fmt.Fprintf(&sb, " %02d|", i)
	}
	filler()
	for i := range n {
		fmt.Fprintf(&sb, "\n%02d|", i)
		for j := range n {
			v := " "
			if m[i][j] {
				v = "X"
			}
			fmt.Fprintf(&sb, " %s |", v)
		}
		filler()
	}
	sb.WriteString("\n")
	for i, id := range ids {
		fmt.Fprintf(&sb, "%02d = %s\n", i, id)
	}
	return sb.String()
}

package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/metaminer/metaminer/internal/model"
)

// Treemap groups genomes by host, source category, source and sample.
// Genomes whose host is Unknown are left out and counted in the notes;
// missing lower levels are shown as Unknown.
func Treemap(view *model.Table) *Figure {
	fig := emptyFigure(ChartTreemap, KindTreemap, "Isolation source")

	root := &Node{Label: "All"}
	unknownHosts := 0
	levels := []model.Field{model.FieldHost, model.FieldSourceCategory, model.FieldSource, model.FieldSample}

	for _, r := range view.Rows() {
		if r.Value(model.FieldHost) == model.HostUnknown {
			unknownHosts++
			continue
		}
		node := root
		node.Count++
		for _, f := range levels {
			label := strings.TrimSpace(r.Value(f))
			if label == "" {
				label = model.HostUnknown
			}
			node = child(node, label)
			node.Count++
		}
	}

	sortTree(root)
	fig.Notes = []string{fmt.Sprintf("Isolation source is Unknown for %d genomes among all selected genomes.", unknownHosts)}
	if root.Count > 0 {
		fig.Tree = root
	}
	return fig
}

func child(parent *Node, label string) *Node {
	for _, c := range parent.Children {
		if c.Label == label {
			return c
		}
	}
	c := &Node{Label: label}
	parent.Children = append(parent.Children, c)
	return c
}

// sortTree orders children by descending count, then label
func sortTree(n *Node) {
	sort.SliceStable(n.Children, func(i, j int) bool {
		if n.Children[i].Count != n.Children[j].Count {
			return n.Children[i].Count > n.Children[j].Count
		}
		return n.Children[i].Label < n.Children[j].Label
	})
	for _, c := range n.Children {
		sortTree(c)
	}
}

package framegraph

import (
	"fmt"
	"io"

	"github.com/emicklei/dot"
)

// WriteDOT renders the linearised plan as a graphviz digraph: passes in
// schedule order chained by their synthesised barriers. Intended for
// debugging; the output is not stable across versions.
func (self *FrameGraph) WriteDOT(w io.Writer) error {
	g := dot.NewGraph(dot.Directed)
	g.Attr("rankdir", "LR")

	nodes := make([]dot.Node, len(self.passes))
	for i, name := range self.names {
		nodes[i] = g.Node(fmt.Sprintf("p%d", i)).Label(fmt.Sprintf("%d: %s", i, name))
	}
	external := g.Node("external").Label("external").Attr("shape", "diamond")

	edge := func(pb plannedBarrier) {
		from, to := external, external
		if pb.beforePass != passNone {
			from = nodes[pb.beforePass]
		}
		if pb.afterPass != passNone {
			to = nodes[pb.afterPass]
		}
		g.Edge(from, to).Label(self.roots[pb.root].name)
	}
	for _, group := range self.preBarriers {
		for _, pb := range group {
			edge(pb)
		}
	}
	for _, pb := range self.epilogue {
		edge(pb)
	}

	_, err := io.WriteString(w, g.String())
	return err
}

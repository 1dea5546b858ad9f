package schedule

import (
	"io"

	"github.com/emicklei/dot"
)

// WriteDOT renders both system graphs as a graphviz digraph for debugging.
// Exclusive-at-start systems render as boxes, parallel systems as ellipses.
func (self *Schedule) WriteDOT(w io.Writer) error {
	self.checkDirty()

	g := dot.NewGraph(dot.Directed)

	render := func(systems []*systemBox, prefix, shape string) {
		nodes := make([]dot.Node, len(systems))
		for i, box := range systems {
			nodes[i] = g.Node(prefix + box.label).Label(box.label).Attr("shape", shape)
		}
		for i, box := range systems {
			for succ := range box.successors {
				g.Edge(nodes[i], nodes[succ])
			}
		}
	}
	render(self.exclusiveSystems, "exclusive/", "box")
	render(self.systems, "parallel/", "ellipse")

	_, err := io.WriteString(w, g.String())
	return err
}

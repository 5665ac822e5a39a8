package tree

import (
	"context"
)

// View is a serializable snapshot of a node and its descendants.
type View struct {
	Kind     Kind   `json:"kind"`
	Name     string `json:"name"`
	Icon     Icon   `json:"icon"`
	Detail   string `json:"detail,omitempty"`
	Selected *bool  `json:"selected,omitempty"`
	Children []View `json:"children,omitempty"`
}

// Snapshot computes the views of nodes, descending at most depth levels
// below them. A negative depth means unlimited.
func Snapshot(ctx context.Context, nodes []Node, depth int) []View {
	views := make([]View, 0, len(nodes))
	for _, n := range nodes {
		v := View{
			Kind: n.Kind(),
			Name: n.DisplayName(),
			Icon: n.Icon(),
		}
		if d, ok := n.(Describer); ok {
			v.Detail = d.Detail()
		}
		if p, ok := n.(*ProfileNode); ok {
			selected := p.Selected()
			v.Selected = &selected
		}
		if depth != 0 {
			if children := Children(ctx, n); len(children) > 0 {
				v.Children = Snapshot(ctx, children, depth-1)
			}
		}
		views = append(views, v)
	}
	return views
}

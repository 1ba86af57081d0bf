// Package doctree nests a flat outline into a section tree for navigation.
package doctree

import "github.com/dgallion1/docoutline/internal/outline"

// DocTree is the root of a nested outline.
type DocTree struct {
	Title    string     `json:"title"`
	Headings int        `json:"headings"`
	Children []*DocNode `json:"children"`
}

// DocNode is a heading and the headings nested beneath it.
type DocNode struct {
	Level    outline.Level `json:"level"`
	Title    string        `json:"text"`
	Page     int           `json:"page"`
	Children []*DocNode    `json:"children,omitempty"`
}

// Build nests entries by level. A heading becomes a child of the closest
// preceding heading with a lower level; skipped levels are not filled in.
func Build(res outline.Result) *DocTree {
	tree := &DocTree{Title: res.Title, Children: []*DocNode{}}

	type stackEntry struct {
		node  *DocNode
		level outline.Level
	}
	root := &DocNode{}
	stack := []stackEntry{{node: root, level: 0}}

	for _, e := range res.Outline {
		node := &DocNode{Level: e.Level, Title: e.Text, Page: e.Page}

		// Pop until the top is a shallower heading.
		for len(stack) > 1 && stack[len(stack)-1].level >= e.Level {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1].node
		parent.Children = append(parent.Children, node)
		stack = append(stack, stackEntry{node: node, level: e.Level})
	}

	if root.Children != nil {
		tree.Children = root.Children
	}
	tree.Headings = tree.Count()
	return tree
}

// Count returns the number of headings in the tree.
func (t *DocTree) Count() int {
	var walk func(nodes []*DocNode) int
	walk = func(nodes []*DocNode) int {
		n := 0
		for _, c := range nodes {
			n += 1 + walk(c.Children)
		}
		return n
	}
	return walk(t.Children)
}

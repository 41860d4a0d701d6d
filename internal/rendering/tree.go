package rendering

// NodeKind names the role of a node in the visual tree
type NodeKind string

// Node kinds
const (
	KindPage    NodeKind = "page"
	KindHeader  NodeKind = "header"
	KindColumn  NodeKind = "column"
	KindSection NodeKind = "section"
	KindHeading NodeKind = "heading"
	KindText    NodeKind = "text"
	KindList    NodeKind = "list"
	KindItem    NodeKind = "item"
	KindTag     NodeKind = "tag"
	KindGroup   NodeKind = "group"
	KindTable   NodeKind = "table"
	KindRow     NodeKind = "row"
	KindCell    NodeKind = "cell"
	KindImage   NodeKind = "image"
	KindLink    NodeKind = "link"
)

// Attribute keys used on nodes
const (
	AttrSection   = "section"   // top-level block id (summary, experience, ...)
	AttrBlock     = "block"     // template-specific blocks that are not sections (basic-info, badge)
	AttrColumn    = "column"    // left or right
	AttrItemID    = "item-id"   // id of the list entry a group renders
	AttrPlacement = "placement" // resolved custom section placement
	AttrHref      = "href"
	AttrSrc       = "src"
	AttrHeader    = "header" // "true" on header cells
	AttrSpan      = "rowspan"
)

// Node is one element of the visual tree produced by a template renderer.
// Trees are plain values: two renders of the same document compare equal.
type Node struct {
	Kind     NodeKind          `json:"kind"`
	Class    string            `json:"class,omitempty"`
	Text     string            `json:"text,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Children []Node            `json:"children,omitempty"`
}

// Attr returns the attribute value for key, or "" when unset
func (n Node) Attr(key string) string {
	if n.Attrs == nil {
		return ""
	}
	return n.Attrs[key]
}

// With returns a copy of n carrying the attribute
func (n Node) With(key, value string) Node {
	attrs := make(map[string]string, len(n.Attrs)+1)
	for k, v := range n.Attrs {
		attrs[k] = v
	}
	attrs[key] = value
	n.Attrs = attrs
	return n
}

// Walk visits n and its descendants depth-first, parents before children.
// Returning false from fn skips the node's children.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// SectionIDs returns the section id of every top-level block in the tree, in document order
func SectionIDs(tree Node) []string {
	var ids []string
	Walk(tree, func(n Node) bool {
		if id := n.Attr(AttrSection); id != "" {
			ids = append(ids, id)
			return false
		}
		return true
	})
	return ids
}

// FindSections returns the block nodes carrying the given section id
func FindSections(tree Node, id string) []Node {
	var found []Node
	Walk(tree, func(n Node) bool {
		if n.Attr(AttrSection) == id {
			found = append(found, n)
			return false
		}
		return true
	})
	return found
}

// Texts returns every non-empty Text value under n in document order
func Texts(n Node) []string {
	var out []string
	Walk(n, func(c Node) bool {
		if c.Text != "" {
			out = append(out, c.Text)
		}
		return true
	})
	return out
}

func el(kind NodeKind, class string, children ...Node) Node {
	return Node{Kind: kind, Class: class, Children: nonNil(children)}
}

func txt(kind NodeKind, class, text string) Node {
	return Node{Kind: kind, Class: class, Text: text}
}

func section(id, class string, children ...Node) Node {
	return el(KindSection, class, children...).With(AttrSection, id)
}

func nonNil(children []Node) []Node {
	if len(children) == 0 {
		return nil
	}
	return children
}

package grammar

import (
	"fmt"
	"io"
	"strings"
)

// Node is one match of a rule in the parse tree.
type Node struct {
	Rule Rule

	// Byte offsets of the match in the source text.
	Start int
	End   int

	// Text is the source text matched, delimiters included.
	Text string

	// Value is the payload of leaf rules: the tag name or the unescaped tag
	// value, the trimmed comment body, the move text, the move number digits
	// or the result token. It is empty for structural rules.
	Value string

	Children []*Node
}

// Child returns the first child produced by rule, or nil.
func (n *Node) Child(rule Rule) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Rule == rule {
			return c
		}
	}
	return nil
}

// ChildrenOf returns every child produced by rule, in document order.
func (n *Node) ChildrenOf(rule Rule) []*Node {
	if n == nil {
		return nil
	}
	var nodes []*Node
	for _, c := range n.Children {
		if c.Rule == rule {
			nodes = append(nodes, c)
		}
	}
	return nodes
}

// Format writes an indented outline of the tree rooted at n.
func (n *Node) Format(w io.Writer) error {
	return n.format(w, 0)
}

func (n *Node) format(w io.Writer, depth int) error {
	indent := strings.Repeat("  ", depth)
	var err error
	if n.Value != "" {
		_, err = fmt.Fprintf(w, "%s%s [%d:%d] %q\n", indent, n.Rule, n.Start, n.End, n.Value)
	} else {
		_, err = fmt.Fprintf(w, "%s%s [%d:%d]\n", indent, n.Rule, n.Start, n.End)
	}
	if err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := c.format(w, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// String returns the outline produced by Format.
func (n *Node) String() string {
	var sb strings.Builder
	n.Format(&sb) //nolint:errcheck // strings.Builder never fails
	return sb.String()
}

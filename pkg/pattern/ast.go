package pattern

import (
	"strconv"
	"strings"
)

// NodeType identifies the kind of an AST node.
type NodeType int

const (
	NodeEmpty NodeType = iota
	NodeLiteral
	NodeAny
	NodeClass
	NodeConcat
	NodeAlternate
	NodeRepeat
)

// Node is a parsed expression. String renders it back in canonical syntax.
type Node interface {
	Type() NodeType
	String() string
}

// Empty matches the empty sequence.
type Empty struct{}

// Literal matches one rune.
type Literal struct {
	Rune rune
}

// Any matches any single rune.
type Any struct{}

// Class matches one rune from a set of inclusive ranges.
type Class struct {
	Ranges []RuneRange
}

// RuneRange is an inclusive range of runes.
type RuneRange struct {
	Lo, Hi rune
}

// Concat matches its nodes in sequence.
type Concat struct {
	Nodes []Node
}

// Alternate matches any one of its nodes.
type Alternate struct {
	Nodes []Node
}

// Repeat matches Body between Min and Max times. Max is -1 when unbounded.
type Repeat struct {
	Body Node
	Min  int
	Max  int
}

func (*Empty) Type() NodeType     { return NodeEmpty }
func (*Literal) Type() NodeType   { return NodeLiteral }
func (*Any) Type() NodeType       { return NodeAny }
func (*Class) Type() NodeType     { return NodeClass }
func (*Concat) Type() NodeType    { return NodeConcat }
func (*Alternate) Type() NodeType { return NodeAlternate }
func (*Repeat) Type() NodeType    { return NodeRepeat }

const metachars = `\.|*+?{}()[]`

func (*Empty) String() string { return "" }
func (*Any) String() string   { return "." }

func (n *Literal) String() string {
	if strings.ContainsRune(metachars, n.Rune) {
		return `\` + string(n.Rune)
	}
	return string(n.Rune)
}

func (n *Class) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for _, rr := range n.Ranges {
		writeClassRune(&sb, rr.Lo)
		if rr.Hi != rr.Lo {
			sb.WriteByte('-')
			writeClassRune(&sb, rr.Hi)
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

func writeClassRune(sb *strings.Builder, r rune) {
	if r == ']' || r == '\\' || r == '-' || r == '^' {
		sb.WriteByte('\\')
	}
	sb.WriteRune(r)
}

func (n *Concat) String() string {
	var sb strings.Builder
	for _, child := range n.Nodes {
		if child.Type() == NodeAlternate {
			sb.WriteString("(" + child.String() + ")")
			continue
		}
		sb.WriteString(child.String())
	}
	return sb.String()
}

func (n *Alternate) String() string {
	parts := make([]string, len(n.Nodes))
	for i, child := range n.Nodes {
		parts[i] = child.String()
	}
	return strings.Join(parts, "|")
}

func (n *Repeat) String() string {
	body := n.Body.String()
	switch n.Body.Type() {
	case NodeEmpty, NodeConcat, NodeAlternate, NodeRepeat:
		body = "(" + body + ")"
	}
	switch {
	case n.Min == 0 && n.Max == -1:
		return body + "*"
	case n.Min == 1 && n.Max == -1:
		return body + "+"
	case n.Min == 0 && n.Max == 1:
		return body + "?"
	case n.Max == -1:
		return body + "{" + strconv.Itoa(n.Min) + ",}"
	case n.Min == n.Max:
		return body + "{" + strconv.Itoa(n.Min) + "}"
	}
	return body + "{" + strconv.Itoa(n.Min) + "," + strconv.Itoa(n.Max) + "}"
}

// Package xast is a small XML syntax tree: roots, elements, processing
// instructions and text. Feed builders assemble a tree and Write turns it
// into bytes.
package xast

type NodeType string

const (
	TypeRoot        NodeType = "root"
	TypeElement     NodeType = "element"
	TypeInstruction NodeType = "instruction"
	TypeText        NodeType = "text"
)

// Node is one of *Root, *Element, *Instruction or *Text.
type Node interface {
	Type() NodeType
}

// Attr is a single attribute. Elements keep attributes in insertion order.
type Attr struct {
	Name  string
	Value string
}

type Root struct {
	Children []Node
}

type Element struct {
	Name       string
	Attributes []Attr
	Children   []Node
}

// Instruction is a processing instruction such as <?xml version="1.0"?>.
type Instruction struct {
	Name  string
	Value string
}

type Text struct {
	Value string
}

func (*Root) Type() NodeType        { return TypeRoot }
func (*Element) Type() NodeType     { return TypeElement }
func (*Instruction) Type() NodeType { return TypeInstruction }
func (*Text) Type() NodeType        { return TypeText }

func NewRoot(children ...Node) *Root {
	return &Root{Children: compact(children)}
}

func NewInstruction(name, value string) *Instruction {
	return &Instruction{Name: name, Value: value}
}

func NewText(value string) *Text {
	return &Text{Value: value}
}

// Elem builds an element. Nil children are dropped so callers can pass
// optional nodes inline.
func Elem(name string, attrs []Attr, children ...Node) *Element {
	return &Element{
		Name:       name,
		Attributes: append([]Attr(nil), attrs...),
		Children:   compact(children),
	}
}

// TextElem builds an element holding a single text node. An empty value
// yields an element without children.
func TextElem(name string, attrs []Attr, value string) *Element {
	if value == "" {
		return Elem(name, attrs)
	}
	return Elem(name, attrs, NewText(value))
}

// Attrs turns name/value pairs into attributes, skipping pairs whose value
// is empty.
func Attrs(pairs ...string) []Attr {
	if len(pairs)%2 != 0 {
		panic("xast: Attrs needs name/value pairs")
	}

	attrs := make([]Attr, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			continue
		}
		attrs = append(attrs, Attr{Name: pairs[i], Value: pairs[i+1]})
	}
	return attrs
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, attr := range e.Attributes {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Text concatenates the values of the direct text children.
func (e *Element) Text() string {
	var s string
	for _, child := range e.Children {
		if t, ok := child.(*Text); ok {
			s += t.Value
		}
	}
	return s
}

func (e *Element) ChildElements() []*Element {
	return childElements(e.Children)
}

// Find returns the first direct child element with the given name.
func (e *Element) Find(name string) *Element {
	return find(e.Children, name)
}

// FindAll returns every direct child element with the given name.
func (e *Element) FindAll(name string) []*Element {
	var found []*Element
	for _, child := range e.ChildElements() {
		if child.Name == name {
			found = append(found, child)
		}
	}
	return found
}

// Find returns the top-level element with the given name.
func (r *Root) Find(name string) *Element {
	return find(r.Children, name)
}

func childElements(nodes []Node) []*Element {
	elements := make([]*Element, 0, len(nodes))
	for _, node := range nodes {
		if el, ok := node.(*Element); ok {
			elements = append(elements, el)
		}
	}
	return elements
}

func find(nodes []Node, name string) *Element {
	for _, el := range childElements(nodes) {
		if el.Name == name {
			return el
		}
	}
	return nil
}

func compact(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, node := range nodes {
		if node == nil || isNilElement(node) {
			continue
		}
		out = append(out, node)
	}
	return out
}

func isNilElement(node Node) bool {
	switch n := node.(type) {
	case *Element:
		return n == nil
	case *Text:
		return n == nil
	case *Instruction:
		return n == nil
	case *Root:
		return n == nil
	}
	return false
}

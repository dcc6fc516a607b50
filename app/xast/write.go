package xast

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

type writeOptions struct {
	indent string
}

type Option func(*writeOptions)

// WithIndent pretty prints elements whose children are all elements.
// Mixed content is written as is so text values never change.
func WithIndent(indent string) Option {
	return func(o *writeOptions) {
		o.indent = indent
	}
}

func ToXML(node Node, opts ...Option) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, node, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func Write(w io.Writer, node Node, opts ...Option) error {
	var o writeOptions
	for _, opt := range opts {
		opt(&o)
	}

	bw := bufio.NewWriter(w)
	wr := &writer{w: bw, opts: o}
	if err := wr.node(node, 0); err != nil {
		return err
	}
	if o.indent != "" {
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

type writer struct {
	w    *bufio.Writer
	opts writeOptions
}

func (wr *writer) node(node Node, depth int) error {
	switch n := node.(type) {
	case *Root:
		for i, child := range n.Children {
			if i > 0 && wr.opts.indent != "" {
				wr.w.WriteByte('\n')
			}
			if err := wr.node(child, depth); err != nil {
				return err
			}
		}
	case *Instruction:
		if strings.Contains(n.Value, "?>") {
			return fmt.Errorf("instruction %q: value must not contain \"?>\"", n.Name)
		}
		wr.w.WriteString("<?")
		wr.w.WriteString(n.Name)
		if n.Value != "" {
			wr.w.WriteByte(' ')
			wr.w.WriteString(n.Value)
		}
		wr.w.WriteString("?>")
	case *Text:
		return xml.EscapeText(wr.w, []byte(n.Value))
	case *Element:
		return wr.element(n, depth)
	default:
		return fmt.Errorf("unknown node type %T", node)
	}
	return nil
}

func (wr *writer) element(el *Element, depth int) error {
	if el.Name == "" {
		return fmt.Errorf("element without a name")
	}

	wr.w.WriteByte('<')
	wr.w.WriteString(el.Name)
	for _, attr := range el.Attributes {
		wr.w.WriteByte(' ')
		wr.w.WriteString(attr.Name)
		wr.w.WriteString(`="`)
		wr.w.WriteString(escapeAttr(attr.Value))
		wr.w.WriteByte('"')
	}

	if len(el.Children) == 0 {
		wr.w.WriteString("/>")
		return nil
	}
	wr.w.WriteByte('>')

	pretty := wr.opts.indent != "" && onlyElements(el.Children)
	for _, child := range el.Children {
		if pretty {
			wr.newline(depth + 1)
		}
		if err := wr.node(child, depth+1); err != nil {
			return err
		}
	}
	if pretty {
		wr.newline(depth)
	}

	wr.w.WriteString("</")
	wr.w.WriteString(el.Name)
	wr.w.WriteByte('>')
	return nil
}

func (wr *writer) newline(depth int) {
	wr.w.WriteByte('\n')
	for i := 0; i < depth; i++ {
		wr.w.WriteString(wr.opts.indent)
	}
}

func onlyElements(nodes []Node) bool {
	for _, node := range nodes {
		if _, ok := node.(*Element); !ok {
			return false
		}
	}
	return true
}

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	`"`, "&quot;",
	"\n", "&#xA;",
	"\r", "&#xD;",
	"\t", "&#x9;",
)

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

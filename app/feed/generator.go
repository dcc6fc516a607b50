package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/lysyi3m/feedtree/app/xast"
)

type Format string

const (
	FormatRSS  Format = "rss"
	FormatAtom Format = "atom"
)

var Formats = []Format{FormatRSS, FormatAtom}

func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatRSS:
		return FormatRSS, nil
	case FormatAtom:
		return FormatAtom, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

func (f Format) ContentType() string {
	if f == FormatAtom {
		return "application/atom+xml"
	}
	return "application/rss+xml"
}

func (f Format) Extension() string {
	return "." + string(f)
}

// Generator builds and serializes feeds. The zero value uses the wall
// clock and writes compact XML.
type Generator struct {
	Now    func() time.Time
	Indent string
}

func NewGenerator(indent string) *Generator {
	return &Generator{Now: time.Now, Indent: indent}
}

// Build reads the clock once and builds the tree for the given format.
func (g *Generator) Build(format Format, channel Channel, entries []Entry) (*xast.Root, error) {
	now := time.Now()
	if g.Now != nil {
		now = g.Now()
	}

	switch format {
	case FormatRSS:
		return buildRSS(now, channel, entries)
	case FormatAtom:
		return buildAtom(now, channel, entries)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func (g *Generator) Run(format Format, channel Channel, entries []Entry) (string, error) {
	tree, err := g.Build(format, channel, entries)
	if err != nil {
		return "", err
	}

	var opts []xast.Option
	if g.Indent != "" {
		opts = append(opts, xast.WithIndent(g.Indent))
	}

	out, err := xast.ToXML(tree, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to serialize %s feed: %w", format, err)
	}
	return out, nil
}

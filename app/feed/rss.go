package feed

import (
	"strconv"
	"time"

	"github.com/lysyi3m/feedtree/app/xast"
)

const (
	namespaceDC   = "http://purl.org/dc/elements/1.1/"
	namespaceAtom = "http://www.w3.org/2005/Atom"
)

// BuildRSS builds an RSS 2.0 document for the channel and its entries.
func BuildRSS(channel Channel, entries []Entry) (*xast.Root, error) {
	return buildRSS(time.Now(), channel, entries)
}

type rssBuilder struct {
	now time.Time
}

func buildRSS(now time.Time, channel Channel, entries []Entry) (*xast.Root, error) {
	b := &rssBuilder{now: now}
	return b.build(channel, entries)
}

func (b *rssBuilder) build(channel Channel, entries []Entry) (*xast.Root, error) {
	if err := validateChannel(channel); err != nil {
		return nil, err
	}

	link, err := resolveField(channel.URL, noEntry, "url")
	if err != nil {
		return nil, err
	}

	children := []xast.Node{
		xast.TextElem("title", nil, channel.Title),
		xast.TextElem("description", nil, channel.Description),
		xast.TextElem("link", nil, link),
		xast.TextElem("lastBuildDate", nil, formatRFC1123(b.now)),
		xast.TextElem("dc:date", nil, formatISO8601(b.now)),
	}

	selfLink := false
	if channel.FeedURL != "" {
		href, err := resolveField(channel.FeedURL, noEntry, "feedUrl")
		if err != nil {
			return nil, err
		}
		selfLink = true
		children = append(children, xast.Elem("atom:link", []xast.Attr{
			{Name: "href", Value: href},
			{Name: "rel", Value: "self"},
			{Name: "type", Value: "application/rss+xml"},
		}))
	}

	if channel.Lang != "" {
		lang := NormalizeLanguage(channel.Lang)
		children = append(children,
			xast.TextElem("language", nil, lang),
			xast.TextElem("dc:language", nil, lang))
	}

	if hasAuthor(channel.Author) {
		author, err := ResolveAuthor(channel.Author)
		if err != nil {
			return nil, withField(err, noEntry, "author.name")
		}
		rights := copyright(b.now.UTC().Year(), author.Name)
		children = append(children,
			xast.TextElem("copyright", nil, rights),
			xast.TextElem("dc:rights", nil, rights))
	}

	for _, tag := range channel.Tags {
		children = append(children, xast.TextElem("category", nil, tag))
	}

	for i, entry := range entries {
		item, err := b.item(i, entry)
		if err != nil {
			return nil, err
		}
		children = append(children, item)
	}

	var atomNS string
	if selfLink {
		atomNS = namespaceAtom
	}
	attrs := xast.Attrs("version", "2.0", "xmlns:dc", namespaceDC, "xmlns:atom", atomNS)

	return document(xast.Elem("rss", attrs, xast.Elem("channel", nil, children...))), nil
}

func (b *rssBuilder) item(index int, entry Entry) (*xast.Element, error) {
	if err := validateEntry(index, entry); err != nil {
		return nil, err
	}

	var children []xast.Node

	if entry.Title != "" {
		children = append(children, xast.TextElem("title", nil, entry.Title))
	}

	if hasAuthor(entry.Author) {
		author, err := ResolveAuthor(entry.Author)
		if err != nil {
			return nil, withField(err, index, "author.name")
		}
		children = append(children, xast.TextElem("dc:creator", nil, author.Name))
		if author.Email != "" {
			children = append(children, xast.TextElem("author", nil, author.Email+" ("+author.Name+")"))
		}
	}

	if entry.URL != "" {
		link, err := resolveField(entry.URL, index, "url")
		if err != nil {
			return nil, err
		}
		// The URL may not be stable, so readers must treat the guid as opaque.
		children = append(children,
			xast.TextElem("link", nil, link),
			xast.TextElem("guid", []xast.Attr{{Name: "isPermaLink", Value: "false"}}, link))
	}

	if hasDate(entry.Published) {
		published, err := resolveDate(entry.Published, index, "published")
		if err != nil {
			return nil, err
		}
		children = append(children,
			xast.TextElem("pubDate", nil, formatRFC1123(published)),
			xast.TextElem("dc:date", nil, formatISO8601(published)))
	}

	if hasDate(entry.Modified) {
		modified, err := resolveDate(entry.Modified, index, "modified")
		if err != nil {
			return nil, err
		}
		children = append(children, xast.TextElem("dc:modified", nil, formatISO8601(modified)))
	}

	for _, tag := range entry.Tags {
		children = append(children, xast.TextElem("category", nil, tag))
	}

	if entry.Enclosure != nil {
		if err := validateEnclosure(index, *entry.Enclosure); err != nil {
			return nil, err
		}
		href, err := resolveField(entry.Enclosure.URL, index, "enclosure.url")
		if err != nil {
			return nil, err
		}
		children = append(children, xast.Elem("enclosure", []xast.Attr{
			{Name: "url", Value: href},
			{Name: "length", Value: strconv.FormatInt(entry.Enclosure.Size, 10)},
			{Name: "type", Value: entry.Enclosure.Type},
		}))
	}

	if body, _ := content(entry); body != "" {
		children = append(children, xast.TextElem("description", nil, body))
	}

	return xast.Elem("item", nil, children...), nil
}

func document(top *xast.Element) *xast.Root {
	return xast.NewRoot(
		xast.NewInstruction("xml", `version="1.0" encoding="utf-8"`),
		top,
	)
}

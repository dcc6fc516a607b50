package feed

import (
	"strconv"
	"time"

	"github.com/lysyi3m/feedtree/app/xast"
)

// BuildAtom builds an Atom 1.0 document for the channel and its entries.
// Every entry needs an author unless the channel has one.
func BuildAtom(channel Channel, entries []Entry) (*xast.Root, error) {
	return buildAtom(time.Now(), channel, entries)
}

type atomBuilder struct {
	now           time.Time
	channelAuthor bool
}

func buildAtom(now time.Time, channel Channel, entries []Entry) (*xast.Root, error) {
	b := &atomBuilder{now: now, channelAuthor: hasAuthor(channel.Author)}
	return b.build(channel, entries)
}

func (b *atomBuilder) build(channel Channel, entries []Entry) (*xast.Root, error) {
	if err := validateChannel(channel); err != nil {
		return nil, err
	}

	link, err := resolveField(channel.URL, noEntry, "url")
	if err != nil {
		return nil, err
	}

	children := []xast.Node{
		xast.TextElem("title", nil, channel.Title),
		xast.TextElem("subtitle", nil, channel.Description),
		// rel="alternate" is the default.
		xast.TextElem("link", nil, link),
		xast.TextElem("id", nil, link),
		xast.TextElem("updated", nil, formatRFC1123(b.now)),
	}

	if channel.FeedURL != "" {
		href, err := resolveField(channel.FeedURL, noEntry, "feedUrl")
		if err != nil {
			return nil, err
		}
		children = append(children, xast.Elem("link", []xast.Attr{
			{Name: "href", Value: href},
			{Name: "rel", Value: "self"},
			{Name: "type", Value: "application/atom+xml"},
		}))
	}

	if b.channelAuthor {
		author, err := ResolveAuthor(channel.Author)
		if err != nil {
			return nil, withField(err, noEntry, "author.name")
		}
		el, err := authorElement(noEntry, author)
		if err != nil {
			return nil, err
		}
		children = append(children,
			xast.TextElem("rights", nil, copyright(b.now.UTC().Year(), author.Name)),
			el)
	}

	for _, tag := range channel.Tags {
		children = append(children, category(tag))
	}

	for i, entry := range entries {
		el, err := b.entry(i, entry)
		if err != nil {
			return nil, err
		}
		children = append(children, el)
	}

	var lang string
	if channel.Lang != "" {
		lang = NormalizeLanguage(channel.Lang)
	}

	return document(xast.Elem("feed", xast.Attrs("xmlns", namespaceAtom, "xml:lang", lang), children...)), nil
}

func (b *atomBuilder) validate(index int, entry Entry) error {
	if err := validateEntry(index, entry); err != nil {
		return err
	}
	if !hasAuthor(entry.Author) && !b.channelAuthor {
		return entryError(ErrMissingEntryAuthor, index, "author")
	}
	return nil
}

func (b *atomBuilder) entry(index int, entry Entry) (*xast.Element, error) {
	if err := b.validate(index, entry); err != nil {
		return nil, err
	}

	var children []xast.Node

	if entry.Title != "" {
		children = append(children, xast.TextElem("title", nil, entry.Title))
	}

	// Without an entry author the channel author applies.
	if hasAuthor(entry.Author) {
		author, err := ResolveAuthor(entry.Author)
		if err != nil {
			return nil, withField(err, index, "author.name")
		}
		el, err := authorElement(index, author)
		if err != nil {
			return nil, err
		}
		children = append(children, el)
	}

	if entry.URL != "" {
		link, err := resolveField(entry.URL, index, "url")
		if err != nil {
			return nil, err
		}
		children = append(children,
			xast.Elem("link", []xast.Attr{{Name: "href", Value: link}}),
			xast.TextElem("id", nil, link))
	}

	if hasDate(entry.Published) {
		published, err := resolveDate(entry.Published, index, "published")
		if err != nil {
			return nil, err
		}
		children = append(children, xast.TextElem("published", nil, formatISO8601(published)))
	}

	if hasDate(entry.Modified) {
		modified, err := resolveDate(entry.Modified, index, "modified")
		if err != nil {
			return nil, err
		}
		children = append(children, xast.TextElem("updated", nil, formatISO8601(modified)))
	}

	for _, tag := range entry.Tags {
		children = append(children, category(tag))
	}

	if entry.Enclosure != nil {
		if err := validateEnclosure(index, *entry.Enclosure); err != nil {
			return nil, err
		}
		href, err := resolveField(entry.Enclosure.URL, index, "enclosure.url")
		if err != nil {
			return nil, err
		}
		children = append(children, xast.Elem("link", []xast.Attr{
			{Name: "rel", Value: "enclosure"},
			{Name: "href", Value: href},
			{Name: "length", Value: strconv.FormatInt(entry.Enclosure.Size, 10)},
			{Name: "type", Value: entry.Enclosure.Type},
		}))
	}

	if body, isHTML := content(entry); body != "" {
		var contentType string
		if isHTML {
			contentType = "html"
		}
		children = append(children, xast.TextElem("content", xast.Attrs("type", contentType), body))
	}

	return xast.Elem("entry", nil, children...), nil
}

func authorElement(index int, author Author) (*xast.Element, error) {
	children := []xast.Node{xast.TextElem("name", nil, author.Name)}
	if author.Email != "" {
		children = append(children, xast.TextElem("email", nil, author.Email))
	}
	if author.URL != "" {
		uri, err := resolveField(author.URL, index, "author.url")
		if err != nil {
			return nil, err
		}
		children = append(children, xast.TextElem("uri", nil, uri))
	}

	return xast.Elem("author", nil, children...), nil
}

func category(term string) *xast.Element {
	return xast.Elem("category", []xast.Attr{{Name: "term", Value: term}})
}

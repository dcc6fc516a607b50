package document

import (
	"fmt"
	"strconv"
	"time"

	"github.com/lysyi3m/feedtree/app/feed"
	"gopkg.in/yaml.v3"
)

// Document is one feed description read from a YAML file.
type Document struct {
	Name    string   `yaml:"-"`
	Formats []string `yaml:"formats"`
	Channel Channel  `yaml:"channel"`
	Entries []Entry  `yaml:"entries"`
}

type Channel struct {
	Title       string   `yaml:"title"`
	URL         string   `yaml:"url"`
	FeedURL     string   `yaml:"feed_url"`
	Description string   `yaml:"description"`
	Lang        string   `yaml:"lang"`
	Author      Author   `yaml:"author"`
	Tags        []string `yaml:"tags"`
}

type Entry struct {
	Title           string     `yaml:"title"`
	URL             string     `yaml:"url"`
	Description     string     `yaml:"description"`
	DescriptionHTML string     `yaml:"description_html"`
	Markdown        string     `yaml:"description_markdown"`
	Author          Author     `yaml:"author"`
	Published       Date       `yaml:"published"`
	Modified        Date       `yaml:"modified"`
	Tags            []string   `yaml:"tags"`
	Enclosure       *Enclosure `yaml:"enclosure"`
}

type Enclosure struct {
	URL  string `yaml:"url"`
	Size int64  `yaml:"size"`
	Type string `yaml:"type"`
}

// Author accepts either a bare name or a {name, email, url} mapping.
type Author struct {
	Value feed.AuthorField
}

func (a *Author) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		a.Value = feed.AuthorName(value.Value)
		return nil
	case yaml.MappingNode:
		var record struct {
			Name  string `yaml:"name"`
			Email string `yaml:"email"`
			URL   string `yaml:"url"`
		}
		if err := value.Decode(&record); err != nil {
			return err
		}
		a.Value = feed.Author{Name: record.Name, Email: record.Email, URL: record.URL}
		return nil
	}
	return fmt.Errorf("line %d: author must be a name or a mapping", value.Line)
}

// Date accepts epoch milliseconds, a YAML timestamp or any date string.
type Date struct {
	Value feed.Date
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: date must be a scalar", value.Line)
	}

	switch value.ShortTag() {
	case "!!int":
		ms, err := strconv.ParseInt(value.Value, 0, 64)
		if err != nil {
			return fmt.Errorf("line %d: invalid epoch milliseconds: %w", value.Line, err)
		}
		d.Value = feed.Epoch(ms)
	case "!!timestamp":
		var t time.Time
		if err := value.Decode(&t); err != nil {
			return err
		}
		d.Value = feed.At(t)
	default:
		d.Value = feed.DateString(value.Value)
	}
	return nil
}

// Feed converts the document into the builder input.
func (d *Document) Feed() (feed.Channel, []feed.Entry) {
	channel := feed.Channel{
		Title:       d.Channel.Title,
		URL:         d.Channel.URL,
		FeedURL:     d.Channel.FeedURL,
		Description: d.Channel.Description,
		Lang:        d.Channel.Lang,
		Author:      d.Channel.Author.Value,
		Tags:        d.Channel.Tags,
	}

	entries := make([]feed.Entry, 0, len(d.Entries))
	for _, e := range d.Entries {
		entry := feed.Entry{
			Title:           e.Title,
			Description:     e.Description,
			DescriptionHTML: e.html(),
			Author:          e.Author.Value,
			URL:             e.URL,
			Published:       e.Published.Value,
			Modified:        e.Modified.Value,
			Tags:            e.Tags,
		}
		if e.Enclosure != nil {
			entry.Enclosure = &feed.Enclosure{URL: e.Enclosure.URL, Size: e.Enclosure.Size, Type: e.Enclosure.Type}
		}
		entries = append(entries, entry)
	}

	return channel, entries
}

// html prefers markup given verbatim over rendered markdown.
func (e *Entry) html() string {
	if e.DescriptionHTML != "" || e.Markdown == "" {
		return e.DescriptionHTML
	}
	return renderMarkdown(e.Markdown)
}

// FeedFormats returns the formats to build, in document order.
func (d *Document) FeedFormats() ([]feed.Format, error) {
	formats := make([]feed.Format, 0, len(d.Formats))
	seen := make(map[feed.Format]bool, len(d.Formats))
	for i, name := range d.Formats {
		format, err := feed.ParseFormat(name)
		if err != nil {
			return nil, fmt.Errorf("invalid format at index %d: %w", i, err)
		}
		if seen[format] {
			return nil, fmt.Errorf("duplicate format at index %d: %s", i, format)
		}
		seen[format] = true
		formats = append(formats, format)
	}
	return formats, nil
}

func (d *Document) Validate() error {
	if d == nil {
		return fmt.Errorf("document is nil")
	}
	_, err := d.FeedFormats()
	return err
}

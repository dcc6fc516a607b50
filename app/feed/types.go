package feed

import (
	"time"
)

// Input types. Empty strings mean "not set" throughout.

type Channel struct {
	Title       string
	URL         string
	FeedURL     string // URL of the generated feed itself, used for rel="self"
	Description string
	Lang        string // BCP 47 tag
	Author      AuthorField
	Tags        []string
}

type Entry struct {
	Title           string
	Description     string // plain text
	DescriptionHTML string // serialized HTML, preferred over Description
	Author          AuthorField
	URL             string
	Published       Date
	Modified        Date
	Tags            []string
	Enclosure       *Enclosure
}

type Enclosure struct {
	URL  string
	Size int64 // bytes
	Type string
}

// AuthorField is either an AuthorName or an Author record.
type AuthorField interface {
	authorField()
	String() string
}

// AuthorName is the shorthand for Author{Name: name}.
type AuthorName string

type Author struct {
	Name  string
	Email string
	URL   string // only used by Atom
}

func (AuthorName) authorField() {}
func (Author) authorField()     {}

func (n AuthorName) String() string { return string(n) }
func (a Author) String() string     { return a.Name }

// Date is one of Time, Epoch or DateString.
type Date interface {
	date()
}

type Time time.Time

// Epoch is a timestamp in milliseconds since the Unix epoch.
type Epoch int64

// DateString is a textual date such as "Fri, 15 Jan 2021 01:18:49 +0000"
// or "2021-01-15T01:18:49Z".
type DateString string

func (Time) date()       {}
func (Epoch) date()      {}
func (DateString) date() {}

// At wraps a time.Time as a Date.
func At(t time.Time) Date {
	return Time(t)
}

func hasAuthor(a AuthorField) bool {
	if a == nil {
		return false
	}
	switch v := a.(type) {
	case AuthorName:
		return v != ""
	case *Author:
		return v != nil
	}
	return true
}

package feed

import (
	"errors"
	"fmt"
)

var (
	ErrMissingChannelTitle            = errors.New("channel title is required")
	ErrMissingChannelURL              = errors.New("channel url is required")
	ErrInvalidURL                     = errors.New("invalid URL")
	ErrInvalidDate                    = errors.New("invalid date")
	ErrMissingEntryTitleOrDescription = errors.New("entry needs a title or a description")
	ErrMissingEntryAuthor             = errors.New("entry author is required when the channel has no author")
	ErrMissingAuthorName              = errors.New("author name is required")
	ErrMissingEnclosureURL            = errors.New("enclosure url is required")
	ErrMissingEnclosureSize           = errors.New("enclosure size is required")
	ErrMissingEnclosureType           = errors.New("enclosure type is required")
	ErrUnsupportedFormat              = errors.New("unsupported feed format")
)

// noEntry marks errors raised at channel level.
const noEntry = -1

// ValidationError carries the kind of failure (one of the Err* sentinels),
// the offending field and, for entry level failures, the entry index.
type ValidationError struct {
	Kind  error
	Field string
	Entry int
	Cause error
}

func (e *ValidationError) Error() string {
	msg := e.Kind.Error()
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, msg)
	}
	if e.Entry != noEntry {
		msg = fmt.Sprintf("entry %d: %s", e.Entry, msg)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ValidationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func channelError(kind error, field string) error {
	return &ValidationError{Kind: kind, Field: field, Entry: noEntry}
}

func entryError(kind error, index int, field string) error {
	return &ValidationError{Kind: kind, Field: field, Entry: index}
}

// withField attaches field and entry information to an error from a
// helper that does not know where its input came from.
func withField(err error, index int, field string) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return &ValidationError{Kind: verr.Kind, Field: field, Entry: index, Cause: verr.Cause}
	}
	return &ValidationError{Kind: err, Field: field, Entry: index}
}

package feed

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const (
	rfc1123Layout = "Mon, 02 Jan 2006 15:04:05 GMT"
	iso8601Layout = "2006-01-02T15:04:05.000Z"
)

// toTime converts any Date variant into a time.Time. Strings without a
// zone are read as UTC.
func toTime(d Date) (time.Time, error) {
	switch v := d.(type) {
	case Time:
		return time.Time(v), nil
	case Epoch:
		return time.UnixMilli(int64(v)).UTC(), nil
	case DateString:
		s := strings.TrimSpace(string(v))
		if s == "" {
			return time.Time{}, invalidDate(errors.New("empty date string"))
		}
		t, err := dateparse.ParseIn(s, time.UTC)
		if err != nil {
			return time.Time{}, invalidDate(err)
		}
		return t, nil
	default:
		return time.Time{}, invalidDate(fmt.Errorf("unsupported value %T", d))
	}
}

func invalidDate(cause error) error {
	return &ValidationError{Kind: ErrInvalidDate, Entry: noEntry, Cause: cause}
}

func hasDate(d Date) bool {
	return d != nil
}

// formatRFC1123 renders t the way HTTP and RSS dates are written,
// e.g. "Fri, 13 Feb 2009 23:31:30 GMT".
func formatRFC1123(t time.Time) string {
	return t.UTC().Format(rfc1123Layout)
}

// formatISO8601 renders t with millisecond precision in UTC,
// e.g. "2009-02-13T23:31:30.123Z".
func formatISO8601(t time.Time) string {
	return t.UTC().Format(iso8601Layout)
}

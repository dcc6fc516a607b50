package feed

import (
	"strconv"
	"time"
)

// Checks run in element order: a record is rejected at the first element
// that cannot be built, and the whole call aborts.

func validateChannel(channel Channel) error {
	if channel.Title == "" {
		return channelError(ErrMissingChannelTitle, "title")
	}
	if channel.URL == "" {
		return channelError(ErrMissingChannelURL, "url")
	}
	return nil
}

func validateEntry(index int, entry Entry) error {
	if entry.Title == "" && entry.Description == "" && entry.DescriptionHTML == "" {
		return entryError(ErrMissingEntryTitleOrDescription, index, "title")
	}
	return nil
}

func validateEnclosure(index int, enclosure Enclosure) error {
	if enclosure.URL == "" {
		return entryError(ErrMissingEnclosureURL, index, "enclosure.url")
	}
	if enclosure.Size <= 0 {
		return entryError(ErrMissingEnclosureSize, index, "enclosure.size")
	}
	if enclosure.Type == "" {
		return entryError(ErrMissingEnclosureType, index, "enclosure.type")
	}
	return nil
}

// content returns the entry body, preferring HTML, and whether it is HTML.
func content(entry Entry) (string, bool) {
	if entry.DescriptionHTML != "" {
		return entry.DescriptionHTML, true
	}
	return entry.Description, false
}

func resolveDate(d Date, index int, field string) (time.Time, error) {
	t, err := toTime(d)
	if err != nil {
		return time.Time{}, withField(err, index, field)
	}
	return t, nil
}

func resolveField(raw string, index int, field string) (string, error) {
	resolved, err := ResolveURL(raw)
	if err != nil {
		return "", withField(err, index, field)
	}
	return resolved, nil
}

func copyright(year int, holder string) string {
	return "© " + strconv.Itoa(year) + " " + holder
}

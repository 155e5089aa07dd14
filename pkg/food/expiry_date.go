package food

import (
	"strings"
	"time"

	"Expiry-Food-Track/entities"

	"github.com/jinzhu/now"
)

// expiryLayouts are the date shapes clients have historically sent.
// Values without an offset are read as UTC.
var expiryLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Mon Jan 2 2006",
	"2006-01",
	"2006",
}

// clockLayouts carry a time of day that jinzhu/now does not detect as one, so
// it would fill their zero clock fields from the current time. They are
// parsed directly instead. The first is what browsers print for a Date.
var clockLayouts = []string{
	"Mon Jan 2 2006 15:04:05 GMT-0700",
	time.RFC1123Z,
	time.RFC1123,
}

var expiryParser = &now.Config{
	TimeLocation: time.UTC,
	TimeFormats:  expiryLayouts,
}

// ParseExpiry turns a client supplied date string into a UTC time.
// The second result is false when the string is not a recognizable date.
func ParseExpiry(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	// "Tue Mar 10 2026 12:00:00 GMT+0000 (Coordinated Universal Time)"
	if i := strings.Index(s, " ("); i > 0 && strings.HasSuffix(s, ")") {
		s = s[:i]
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	t, err := expiryParser.Parse(s)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// NormalizeDate replaces a parseable text date with its canonical value in
// place and reports whether it did. Unparseable text is left untouched.
func NormalizeDate(d *entities.DateValue) bool {
	if d == nil || !d.IsText {
		return false
	}
	t, ok := ParseExpiry(d.Text)
	if !ok {
		return false
	}
	*d = entities.DateValue{Time: t}
	return true
}

package handlers

import (
	"strings"
	"time"
)

// --------------------------------------------------
// Demo-class dates arrive from forms in several shapes
// --------------------------------------------------

var demoDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseDemoDate reads a client date in loc. Offsets in the input win over loc.
func parseDemoDate(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range demoDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseDay(raw string, loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(raw), loc)
	return t, err == nil
}

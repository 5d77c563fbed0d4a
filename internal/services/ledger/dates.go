package ledger

import (
	"regexp"
	"strings"
	"time"
)

// Transaction dates come in as DD/MM/YYYY, are stored as DD-MM-YYYY and go
// back out as DD/MM/YYYY. Range-filter boundaries additionally accept the
// unseparated DDMMYYYY form.

const (
	displayLayout = "02/01/2006"
	storageLayout = "02-01-2006"
)

var displayDateRE = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

func validDisplayDate(s string) bool {
	return displayDateRE.MatchString(s)
}

func toStorageDate(s string) string {
	return strings.ReplaceAll(s, "/", "-")
}

func toDisplayDate(s string) string {
	return strings.ReplaceAll(s, "-", "/")
}

func parseStorageDate(s string) (time.Time, bool) {
	t, err := time.Parse(storageLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseFilterDate parses a range boundary in any of the three accepted
// encodings: DD/MM/YYYY, DD-MM-YYYY or DDMMYYYY.
func parseFilterDate(s string) (time.Time, bool) {
	var layout string
	switch {
	case strings.Contains(s, "/"):
		layout = displayLayout
	case strings.Contains(s, "-"):
		layout = storageLayout
	default:
		layout = "02012006"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

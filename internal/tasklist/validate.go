package tasklist

import (
	"strings"
	"time"

	"github.com/JamesPrial/tasklist/internal/storage"
)

// DateLayout is the accepted date format, as sent by an HTML date input.
const DateLayout = "2006-01-02"

// IsFutureDate reports whether value names today or a later day.
//
// The comparison is at day granularity in now's location. Values that don't
// parse as DateLayout are never in the future.
func IsFutureDate(value string, now time.Time) bool {
	loc := now.Location()
	date, err := time.ParseInLocation(DateLayout, strings.TrimSpace(value), loc)
	if err != nil {
		return false
	}

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return !date.Before(today)
}

// IsDuplicate reports whether tasks already holds a record with the same
// names, ignoring case, and exactly the same date string.
func IsDuplicate(tasks []storage.Task, name1, name2, date string) bool {
	for _, t := range tasks {
		if !t.Valid() {
			continue
		}
		if strings.EqualFold(t.Name1, name1) &&
			strings.EqualFold(t.Name2, name2) &&
			t.Date == date {
			return true
		}
	}
	return false
}

package models

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// weekdayLabels maps time.Weekday to the labels used in reports.
var weekdayLabels = [7]string{
	time.Sunday:    "воскресенье",
	time.Monday:    "понедельник",
	time.Tuesday:   "вторник",
	time.Wednesday: "среда",
	time.Thursday:  "четверг",
	time.Friday:    "пятница",
	time.Saturday:  "суббота",
}

// CanonicalWeekdays is the Monday-first report order.
var CanonicalWeekdays = [7]time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

func WeekdayLabel(d time.Weekday) string {
	return weekdayLabels[d]
}

type WeekdayAverage struct {
	Day     string
	Average decimal.Decimal
}

// WeekdaySpending always holds seven entries in CanonicalWeekdays order.
type WeekdaySpending []WeekdayAverage

// Get returns the average for a weekday label and whether it is present.
func (w WeekdaySpending) Get(day string) (decimal.Decimal, bool) {
	for _, entry := range w {
		if entry.Day == day {
			return entry.Average, true
		}
	}
	return decimal.Zero, false
}

// MarshalJSON writes an object whose keys keep the canonical weekday order.
func (w WeekdaySpending) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range w {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Day)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(entry.Average.StringFixed(2))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Package timex holds small time helpers: a JSON-friendly Duration and the
// canonical textual encoding of timestamps in the record store.
package timex

import (
	"encoding/json"
	"errors"
	"time"
)

// Duration unmarshals from JSON either as a string like "3s" or as an
// integer number of nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	default:
		return errors.New("invalid duration")
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// StoreLayout is the canonical textual timestamp encoding in the record
// store: RFC3339 in UTC with fixed-width nanoseconds, so the text sorts
// lexicographically in chronological order. The activity log's recorded_at
// ordering relies on that.
const StoreLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Format renders t in the canonical store encoding.
func Format(t time.Time) string {
	return t.UTC().Format(StoreLayout)
}

// Parse reads a timestamp written by Format. It also accepts plain
// RFC3339Nano values.
func Parse(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

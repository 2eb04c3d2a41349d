package core

import (
	"encoding/json"
	"time"
)

// TimestampLayout is the ISO-8601 form every new transaction date is written in.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// legacyLayouts are locale renderings found in records written by older pages.
// Those without a zone were written in the local time of the writer.
var legacyLayouts = []string{
	time.RFC3339Nano,
	"1/2/2006, 3:04:05 PM",
	"02/01/2006, 15:04:05",
	"2/1/2006, 15:04:05",
	"2006-01-02 15:04:05",
}

// Timestamp is a transaction date. Values that cannot be parsed are kept
// verbatim so a load/persist cycle does not lose them.
type Timestamp struct {
	time.Time
	raw string
}

// NewTimestamp wraps t as a UTC timestamp.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

// Raw returns the original text of an unparsable date, or "".
func (ts Timestamp) Raw() string {
	return ts.raw
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.Time.IsZero() {
		return json.Marshal(ts.raw)
	}
	return json.Marshal(ts.Time.UTC().Format(TimestampLayout))
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		// Not a string (null or a number): keep the zero value.
		*ts = Timestamp{}
		return nil
	}
	for _, layout := range legacyLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			*ts = Timestamp{Time: t.UTC()}
			return nil
		}
	}
	*ts = Timestamp{raw: s}
	return nil
}

// Display renders the date for listings in local time, falling back to the
// stored text for dates that could not be parsed.
func (ts Timestamp) Display() string {
	if ts.Time.IsZero() {
		if ts.raw == "" {
			return "-"
		}
		return ts.raw
	}
	return ts.Time.Local().Format("2006-01-02 15:04")
}

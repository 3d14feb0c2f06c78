package fitness

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Reps holds the reps field of an exercise. Source documents store it either
// as a number (10) or as free text ("8-12", "to failure").
type Reps string

// UnmarshalJSON accepts a JSON string or number. Any other JSON value decodes
// to empty reps rather than failing the whole document.
func (r *Reps) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = Reps(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		*r = ""
		return nil
	}
	*r = Reps(n.String())
	return nil
}

// Leading returns the leading integer of the reps text: optional leading
// spaces, an optional sign, then digits. "8-12" is 8, "10.5" is 10 and text
// without leading digits is 0.
func (r Reps) Leading() int {
	s := strings.TrimLeft(string(r), " \t\n\r")
	sign := 1
	if s != "" && (s[0] == '-' || s[0] == '+') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return sign * n
}

// number is a lenient JSON number that also accepts numeric strings.
// Unparseable values decode as 0.
type number float64

func (n *number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*n = 0
			return nil
		}
		*n = number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		*n = 0
		return nil
	}
	*n = number(f)
	return nil
}

// label is a text field that may be stored as a string or a number
// (weight samples are labelled by date or by week index).
type label string

func (l *label) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = label(s)
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		*l = ""
		return nil
	}
	*l = label(b)
	return nil
}

// timestampLayouts are tried in order by ParseTimestamp.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006, 3:04:05 PM",
	"1/2/2006",
}

// ParseTimestamp parses a timestamp string using the formats the export is
// known to contain. It returns the zero time if the string is empty or cannot
// be parsed by any supported format.
func ParseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

// parseTimeValue decodes a raw JSON timestamp that is either a string or a
// number of epoch milliseconds.
func parseTimeValue(raw json.RawMessage) time.Time {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return time.Time{}
		}
		return ParseTimestamp(s)
	}
	var ms float64
	if err := json.Unmarshal(raw, &ms); err != nil || ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(int64(ms))
}

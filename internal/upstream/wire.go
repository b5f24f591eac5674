package upstream

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// deadline layouts accepted from the backend, most specific first.
// Naive timestamps are read as UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// epochMillisCutoff separates Unix seconds from Unix milliseconds; seconds
// only pass it after the year 5138.
const epochMillisCutoff = 1e11

// flexTime decodes the loosely formatted deadlines stored by the backend:
// a string in one of timeLayouts, or a Unix epoch number (seconds or
// milliseconds, bare or quoted). Unparseable values decode to the zero time
// instead of failing the whole list.
type flexTime struct{ time.Time }

func (f *flexTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		f.Time = epochTime(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return nil
	}
	f.Time = parseTime(s)
	return nil
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return epochTime(n)
	}
	return time.Time{}
}

func epochTime(n float64) time.Time {
	if n <= 0 || math.IsInf(n, 0) || math.IsNaN(n) {
		return time.Time{}
	}
	if n >= epochMillisCutoff {
		n /= 1000
	}
	sec, frac := math.Modf(n)
	return time.Unix(int64(sec), int64(math.Round(frac*1e9/1e3))*1e3).UTC()
}

// commentCount accepts either a number or the embedded comment list.
type commentCount int

func (c *commentCount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		*c = commentCount(len(items))
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*c = commentCount(n)
	return nil
}

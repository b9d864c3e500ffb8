package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are tried in order by ParseTimestamp
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006:01:02 15:04:05", // EXIF
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/1/2 15:04:05", // also accepts zero-padded month and day
	"2006/1/2",
}

// ParseTimestamp parses a capture timestamp. Empty, Unknown and
// unparseable values report false.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, Unknown) {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			if t.Year() <= 0 {
				return time.Time{}, false
			}
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp renders t the way intrinsic timestamps are stored
func FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// BucketKey groups records by (year, month). The zero value is the unknown bucket.
type BucketKey struct {
	Year  int
	Month time.Month
}

// UnknownBucket holds records whose timestamp is absent or unparseable
var UnknownBucket = BucketKey{}

// BucketOf returns the bucket containing t
func BucketOf(t time.Time) BucketKey {
	return BucketKey{Year: t.Year(), Month: t.Month()}
}

// IsUnknown reports whether k is the unknown bucket
func (k BucketKey) IsUnknown() bool {
	return k.Year <= 0 || k.Month < time.January || k.Month > time.December
}

// Valid reports whether k names a real month or is exactly the unknown
// bucket. Out-of-range keys such as {2023, 13} are not valid selectors.
func (k BucketKey) Valid() bool {
	if k == UnknownBucket {
		return true
	}
	return k.Year > 0 && k.Month >= time.January && k.Month <= time.December
}

// String renders the key as "2023-5" or "unknown"
func (k BucketKey) String() string {
	if k.IsUnknown() {
		return Unknown
	}
	return fmt.Sprintf("%d-%d", k.Year, int(k.Month))
}

// Label renders the key for display, e.g. "May 2023"
func (k BucketKey) Label() string {
	if k.IsUnknown() {
		return "Unknown date"
	}
	return fmt.Sprintf("%s %d", k.Month, k.Year)
}

// Compare orders known keys chronologically. The unknown bucket sorts after
// every known key.
func (k BucketKey) Compare(o BucketKey) int {
	switch {
	case k.IsUnknown() && o.IsUnknown():
		return 0
	case k.IsUnknown():
		return 1
	case o.IsUnknown():
		return -1
	}
	if k.Year != o.Year {
		if k.Year < o.Year {
			return -1
		}
		return 1
	}
	if k.Month != o.Month {
		if k.Month < o.Month {
			return -1
		}
		return 1
	}
	return 0
}

// ParseBucketKey parses "2023-5", "2023-05" or "unknown"
func ParseBucketKey(s string) (BucketKey, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, Unknown) {
		return UnknownBucket, nil
	}
	year, month, ok := strings.Cut(s, "-")
	if !ok {
		return BucketKey{}, fmt.Errorf("invalid month %q: expected YYYY-M or unknown", s)
	}
	y, err := strconv.Atoi(year)
	if err != nil || y <= 0 {
		return BucketKey{}, fmt.Errorf("invalid year in %q", s)
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return BucketKey{}, fmt.Errorf("invalid month in %q", s)
	}
	return BucketKey{Year: y, Month: time.Month(m)}, nil
}

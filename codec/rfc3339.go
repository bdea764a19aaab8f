// Package codec provides goderive codecs for common standard types.
package codec

import (
	"time"

	goderive "github.com/reoring/goderive"
)

// TimeRFC3339 returns a Codec that converts between RFC3339 strings and time.Time.
// Encoding normalizes to UTC and trims trailing zeros of the fraction.
func TimeRFC3339() goderive.Codec[time.Time] {
	return goderive.Transform(goderive.String(), decodeRFC3339, formatRFC3339Canonical)
}

func decodeRFC3339(s string) (time.Time, error) {
	t, err := parseRFC3339(s)
	if err != nil {
		return time.Time{}, goderive.Conversion("invalid RFC3339 time", err)
	}
	return t, nil
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// TimeUnix encodes time.Time as integer seconds since the Unix epoch.
func TimeUnix() goderive.Codec[time.Time] {
	return goderive.Transform(goderive.Int64(),
		func(n int64) (time.Time, error) { return time.Unix(n, 0).UTC(), nil },
		func(t time.Time) int64 { return t.Unix() },
	)
}

package codec

import (
	"time"

	goderive "github.com/reoring/goderive"
)

// Duration encodes time.Duration in Go syntax ("1h30m", "250ms").
func Duration() goderive.Codec[time.Duration] {
	return goderive.Transform(goderive.String(),
		func(s string) (time.Duration, error) {
			d, err := time.ParseDuration(s)
			if err != nil {
				return 0, goderive.Conversion("invalid duration", err)
			}
			return d, nil
		},
		time.Duration.String,
	)
}

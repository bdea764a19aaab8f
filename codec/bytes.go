package codec

import (
	"encoding/base64"

	goderive "github.com/reoring/goderive"
)

// Base64 encodes []byte as standard padded base64. Decoding also accepts
// unpadded and URL-safe input.
func Base64() goderive.Codec[[]byte] {
	return goderive.Transform(goderive.String(), decodeBase64, base64.StdEncoding.EncodeToString)
}

func decodeBase64(s string) ([]byte, error) {
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		if b, err := enc.DecodeString(s); err == nil {
			return b, nil
		}
	}
	_, err := base64.StdEncoding.DecodeString(s)
	return nil, goderive.Conversion("invalid base64", err)
}

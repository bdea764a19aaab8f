package codec

import (
	"github.com/google/uuid"

	goderive "github.com/reoring/goderive"
)

// UUID encodes uuid.UUID in its canonical hyphenated form. Decoding
// accepts every form uuid.Parse does (braces, urn:uuid: prefix).
func UUID() goderive.Codec[uuid.UUID] {
	return goderive.Transform(goderive.String(),
		func(s string) (uuid.UUID, error) {
			id, err := uuid.Parse(s)
			if err != nil {
				return uuid.Nil, goderive.Conversion("invalid uuid", err)
			}
			return id, nil
		},
		uuid.UUID.String,
	)
}

// UUIDKey is the key codec for map[uuid.UUID]V.
func UUIDKey() goderive.KeyCodec[uuid.UUID] {
	return goderive.NewKeyCodec(uuid.UUID.String, func(s string) (uuid.UUID, bool) {
		id, err := uuid.Parse(s)
		return id, err == nil
	})
}

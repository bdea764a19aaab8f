// Package goderive derives bidirectional JSON codecs for Go structs
// (product types) and sealed interfaces (sum types) from explicit schema
// descriptors and an immutable Config.
//
// Package layout:
//
// - The root package holds the Value model, the Encoder/Decoder/Codec
// contracts, key codecs, Config, descriptors, the derivation engine and the
// memoizing Registry.
// - jsontext/ converts between JSON text and Value (go-json by default).
// - codec/ provides codecs for common standard types (time, UUID, bytes).
// - transcode/ moves Values to and from CBOR, MessagePack and structpb.
// - settings/ loads a Config from YAML.
// - log/ adapts zap and logrus to Logger; middleware/ binds HTTP bodies.
//
// Typical usage:
//
//	users := goderive.Product[User]("User",
//		goderive.Field("firstName", func(u *User) *string { return &u.FirstName }, goderive.String()),
//		goderive.FieldDefault("lastName", func(u *User) *string { return &u.LastName }, goderive.String(), "Doe"),
//	)
//	cfg := goderive.NewConfig().WithSnakeCaseFieldNames().WithUseDefaults(true)
//	c, err := goderive.DeriveProduct(users, cfg)
//
//	v := c.Encode(User{FirstName: "Foo"})     // {"first_name":"Foo","last_name":""}
//	u, err := c.Decode(v)
//	data, err := jsontext.Encode(u, c)
//
// Derivation never reflects over values: descriptors are built by hand (or
// by generated code) and the engine only consumes them.
package goderive

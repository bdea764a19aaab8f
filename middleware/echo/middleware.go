// Package echomw decodes echo request bodies with derived codecs.
package echomw

import (
	"github.com/labstack/echo/v4"

	goderive "github.com/reoring/goderive"
	"github.com/reoring/goderive/jsontext"
	"github.com/reoring/goderive/middleware"
)

// DecodeJSON decodes the request body with dec and stores the result in the
// request context. Failures are answered with middleware.ErrorPayload.
func DecodeJSON[T any](dec goderive.Decoder[T], opts ...jsontext.Option) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v, err := middleware.DecodeRequest(c.Request(), dec, opts...)
			if err != nil {
				return Respond(c, middleware.StatusFor(err), middleware.ErrorPayload(err))
			}
			ctx := middleware.ContextWithDecoded(c.Request().Context(), v)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetDecoded fetches the decoded body from echo.Context.
func GetDecoded[T any](c echo.Context) (T, bool) {
	return middleware.DecodedFromContext[T](c.Request().Context())
}

// JSON writes v encoded with enc.
func JSON[T any](c echo.Context, status int, v T, enc goderive.Encoder[T]) error {
	return Respond(c, status, enc.Encode(v))
}

// Respond writes a Value as the response body.
func Respond(c echo.Context, status int, v goderive.Value) error {
	b, err := jsontext.Marshal(v)
	if err != nil {
		return err
	}
	return c.JSONBlob(status, b)
}

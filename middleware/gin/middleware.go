// Package ginmw decodes gin request bodies with derived codecs.
package ginmw

import (
	"github.com/gin-gonic/gin"

	goderive "github.com/reoring/goderive"
	"github.com/reoring/goderive/jsontext"
	"github.com/reoring/goderive/middleware"
)

// DecodeJSON decodes the request body with dec, stores the result in the
// request context, and aborts with middleware.ErrorPayload on failure.
func DecodeJSON[T any](dec goderive.Decoder[T], opts ...jsontext.Option) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := middleware.DecodeRequest(c.Request, dec, opts...)
		if err != nil {
			Respond(c, middleware.StatusFor(err), middleware.ErrorPayload(err))
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithDecoded(c.Request.Context(), v))
		c.Next()
	}
}

// GetDecoded fetches the decoded body from gin.Context.
func GetDecoded[T any](c *gin.Context) (T, bool) {
	return middleware.DecodedFromContext[T](c.Request.Context())
}

// JSON writes v encoded with enc.
func JSON[T any](c *gin.Context, status int, v T, enc goderive.Encoder[T]) {
	Respond(c, status, enc.Encode(v))
}

// Respond writes a Value as the response body.
func Respond(c *gin.Context, status int, v goderive.Value) {
	b, err := jsontext.Marshal(v)
	if err != nil {
		_ = c.Error(err)
		c.Status(500)
		return
	}
	c.Data(status, "application/json", b)
}

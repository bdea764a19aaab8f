package ginmw_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	goderive "github.com/reoring/goderive"
	ginmw "github.com/reoring/goderive/middleware/gin"
)

type Note struct{ Text string }

func noteCodec() *goderive.ProductCodec[Note] {
	return goderive.MustDeriveProduct(goderive.Product[Note]("Note",
		goderive.Field("text", func(n *Note) *string { return &n.Text }, goderive.String()),
	), goderive.NewConfig())
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	c := noteCodec()
	r := gin.New()
	r.POST("/notes", ginmw.DecodeJSON[Note](c), func(ctx *gin.Context) {
		n, ok := ginmw.GetDecoded[Note](ctx)
		if !ok {
			ctx.Status(http.StatusInternalServerError)
			return
		}
		n.Text = strings.ToUpper(n.Text)
		ginmw.JSON(ctx, http.StatusOK, n, c)
	})
	return r
}

func TestDecodeJSON(t *testing.T) {
	r := newRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(`{"text":"hi"}`)))
	if rec.Code != http.StatusOK || rec.Body.String() != `{"text":"HI"}` {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(`{"text":1}`)))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"path":"/text"`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

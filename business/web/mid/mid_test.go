package mid_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/ardanlabs/powchain/business/web/mid"
	"github.com/ardanlabs/powchain/foundation/web"
	"github.com/go-playground/assert/v2"
	"go.uber.org/zap"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func TestErrorsAndPanics(t *testing.T) {
	log := zap.NewNop().Sugar()

	app := web.NewApp(
		make(chan os.Signal, 1),
		mid.Logger(log),
		mid.Errors(log),
		mid.Metrics(),
		mid.Cors("*"),
		mid.Panics(),
	)

	app.Handle(http.MethodGet, "v1", "/panic", func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		panic("boom")
	})
	app.Handle(http.MethodGet, "v1", "/fail", func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return errors.New("database password is hunter2")
	})

	t.Log("Given the need to handle failing requests.")
	{
		t.Logf("\tTest 0:\tWhen a handler panics.")
		{
			w := httptest.NewRecorder()
			app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/panic", nil))

			assert.Equal(t, w.Code, http.StatusInternalServerError)
			assert.Equal(t, w.Header().Get("Access-Control-Allow-Origin"), "*")
			t.Logf("\t%s\tTest 0:\tShould recover and respond with a 500.", success)
		}

		t.Logf("\tTest 1:\tWhen a handler returns an untrusted error.")
		{
			w := httptest.NewRecorder()
			app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/fail", nil))

			assert.Equal(t, w.Code, http.StatusInternalServerError)
			if strings.Contains(w.Body.String(), "hunter2") {
				t.Fatalf("\t%s\tTest 1:\tShould not leak the error text.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould not leak the error text.", success)
		}
	}
}

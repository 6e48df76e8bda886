package api

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/procwise/backoffice-client/internal/httpclient"
)

func newTestClient(t *testing.T, handler *httptest.Server) *httpclient.Client {
	t.Helper()
	t.Cleanup(handler.Close)
	c := httpclient.New(handler.URL, 5*time.Second, func() {})
	c.SetToken("test-token")
	return c
}

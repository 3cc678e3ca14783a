package server

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"maxclack/internal/config"
	"maxclack/internal/db/dbtest"

	"gorm.io/gorm"
)

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test; listen unavailable: %v", err)
	}
	ts := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	ts.Start()
	t.Cleanup(ts.Close)
	return ts
}

// newDBTestServer starts a server backed by a fresh in-memory database.
func newDBTestServer(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()
	conn := dbtest.Open(t)
	srv := New(conn, config.Default(), nil)
	return newTestServer(t, srv.Handler()), conn
}

package e2e

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"splashd/internal/event"
	"splashd/internal/httpapi"
	"splashd/internal/registry"
	"splashd/internal/splash"
	"splashd/pkg/types"
)

// createGamesDir writes one yaml descriptor per id and returns the directory.
func createGamesDir(t *testing.T, ids ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, id := range ids {
		body := "title: " + strings.ToUpper(id[:1]) + id[1:] + "\nthumbnail: https://cdn.example.com/" + id + ".png\n"
		p := filepath.Join(dir, id+".yaml")
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatalf("write game %s: %v", p, err)
		}
	}
	return dir
}

// newServerForDir wires the same stack as `splashd serve` on an httptest server.
func newServerForDir(t *testing.T, gamesDir string, opts splash.Options, policy event.FailurePolicy) (*httptest.Server, *splash.Service) {
	t.Helper()
	games, err := registry.LoadDir(gamesDir)
	if err != nil {
		t.Fatalf("load games: %v", err)
	}
	bus := event.New(event.WithFailurePolicy(policy), event.WithMetrics(false))
	svc, err := splash.NewService(bus, games, opts, zerolog.Nop())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	srv := httptest.NewServer(httpapi.NewMux(svc))
	t.Cleanup(func() {
		srv.Close()
		svc.Close()
	})
	return srv, svc
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPostJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func dialEvents(t *testing.T, srv *httptest.Server, events string) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/events/ws?events=" + events
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readWS(t *testing.T, conn *websocket.Conn) types.WsMessage {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg types.WsMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read ws: %v", err)
	}
	return msg
}

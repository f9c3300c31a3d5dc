package e2e

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/text/language"

	"splashd/internal/event"
	"splashd/internal/splash"
	"splashd/pkg/types"
)

func getStatus(t *testing.T, url string) types.StatusResponse {
	t.Helper()
	resp, body := httpGet(t, url+"/status")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status code=%d", resp.StatusCode)
	}
	var st types.StatusResponse
	if err := json.Unmarshal(body, &st); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	return st
}

func splashFor(st types.StatusResponse, id string) types.SplashStatus {
	for _, s := range st.Splashes {
		if s.GameID == id {
			return s
		}
	}
	return types.SplashStatus{}
}

// TestE2E_SplashLifecycle renders a splash page, clicks play over HTTP and
// checks that only the targeted builder is dismissed.
func TestE2E_SplashLifecycle(t *testing.T) {
	dir := createGamesDir(t, "snake", "tetris")
	srv, _ := newServerForDir(t, dir, splash.Options{Version: "1.0.0", ConsentDomain: true}, event.FailFast)

	resp, body := httpGet(t, srv.URL+"/games")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("games status=%d", resp.StatusCode)
	}
	var games types.GamesResponse
	if err := json.Unmarshal(body, &games); err != nil || len(games.Games) != 2 {
		t.Fatalf("unexpected games %s (%v)", body, err)
	}

	resp, body = httpGet(t, srv.URL+"/splash/snake?lang=fr")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("page status=%d", resp.StatusCode)
	}
	page := string(body)
	for _, want := range []string{"<title>Snake</title>", ">Jouer</button>", `<div class="idhb-sdk-version">1.0.0</div>`, "snake.png"} {
		if !strings.Contains(page, want) {
			t.Fatalf("page missing %q", want)
		}
	}

	st := getStatus(t, srv.URL)
	if st.Events["playClick"] != 2 || splashFor(st, "snake").Dismissed {
		t.Fatalf("unexpected initial status %+v", st)
	}

	resp, body = httpPostJSON(t, srv.URL+"/splash/snake/play", []byte(`{}`))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("play status=%d body=%s", resp.StatusCode, body)
	}
	st = getStatus(t, srv.URL)
	if s := splashFor(st, "snake"); !s.Dismissed || s.Plays != 1 {
		t.Fatalf("snake should be dismissed: %+v", s)
	}
	if s := splashFor(st, "tetris"); s.Dismissed || s.Plays != 0 {
		t.Fatalf("tetris should be untouched: %+v", s)
	}
}

// TestE2E_WebsocketSeesSplashClosed follows the chain play click, builder
// listener, splashClosed broadcast, websocket forwarder.
func TestE2E_WebsocketSeesSplashClosed(t *testing.T) {
	dir := createGamesDir(t, "snake")
	srv, svc := newServerForDir(t, dir, splash.Options{}, event.FailFast)

	conn := dialEvents(t, srv, "splashShown,splashClosed")
	_ = readWS(t, conn)
	_ = readWS(t, conn)

	if _, err := svc.Render("snake", language.German); err != nil {
		t.Fatalf("render: %v", err)
	}
	if msg := readWS(t, conn); msg.Event != "splashShown" || msg.Payload["lang"] != "de" {
		t.Fatalf("expected splashShown, got %+v", msg)
	}

	if resp, body := httpPostJSON(t, srv.URL+"/splash/snake/play", nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("play status=%d body=%s", resp.StatusCode, body)
	}
	if msg := readWS(t, conn); msg.Event != "splashClosed" || msg.Payload["game"] != "snake" {
		t.Fatalf("expected splashClosed, got %+v", msg)
	}

	// A second click does not close the splash again.
	_, _ = httpPostJSON(t, srv.URL+"/splash/snake/play", nil)
	_ = conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var extra types.WsMessage
	if err := conn.ReadJSON(&extra); err == nil {
		t.Fatalf("unexpected extra message %+v", extra)
	}
}

// TestE2E_FailurePolicies checks the HTTP outcome of a failing listener under
// both policies.
func TestE2E_FailurePolicies(t *testing.T) {
	dir := createGamesDir(t, "snake")
	for _, tc := range []struct {
		policy    event.FailurePolicy
		wantAfter bool
	}{
		{event.FailFast, false},
		{event.Isolate, true},
	} {
		t.Run(tc.policy.String(), func(t *testing.T) {
			srv, svc := newServerForDir(t, dir, splash.Options{}, tc.policy)
			bus := svc.Dispatcher()

			_ = bus.Subscribe(event.GameStart, event.ListenerFunc(func(event.Payload, event.Scope) error {
				return errors.New("boom")
			}), "first")
			var after atomic.Bool
			_ = bus.Subscribe(event.GameStart, event.ListenerFunc(func(event.Payload, event.Scope) error {
				after.Store(true)
				return nil
			}), "second")

			resp, body := httpPostJSON(t, srv.URL+"/events/gameStart", []byte(`{"level":1}`))
			if resp.StatusCode != http.StatusInternalServerError {
				t.Fatalf("expected 500, got %d", resp.StatusCode)
			}
			if !strings.Contains(string(body), "boom") {
				t.Fatalf("expected listener error in body: %s", body)
			}
			if after.Load() != tc.wantAfter {
				t.Fatalf("second listener ran=%v, want %v", after.Load(), tc.wantAfter)
			}
		})
	}
}

// TestE2E_ReconfigureViaEvent swaps the prefix at runtime through a
// configReloaded broadcast.
func TestE2E_ReconfigureViaEvent(t *testing.T) {
	dir := createGamesDir(t, "snake")
	srv, svc := newServerForDir(t, dir, splash.Options{}, event.FailFast)

	if _, err := svc.Dispatcher().Broadcast(event.ConfigReloaded, event.Payload{"options": splash.Options{Prefix: "zz-"}}); err != nil {
		t.Fatalf("reload: %v", err)
	}
	resp, body := httpGet(t, srv.URL+"/splash/snake/markup")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("markup status=%d", resp.StatusCode)
	}
	var m types.MarkupResponse
	if err := json.Unmarshal(body, &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.ContainerID != "zz-splash" || !strings.Contains(m.CSS, ".zz-splash-container") {
		t.Fatalf("expected new prefix, got %+v", m.ContainerID)
	}
}

package splash

import (
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"splashd/internal/event"
	"splashd/pkg/types"
)

var testGames = []types.Game{
	{ID: "snake", Title: "Snake"},
	{ID: "tetris", Title: "Tetris"},
}

func newTestService(t *testing.T, opts Options) (*Service, *event.Dispatcher) {
	t.Helper()
	bus := newBus()
	s, err := NewService(bus, testGames, opts, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	t.Cleanup(s.Close)
	return s, bus
}

func TestNewServiceRejectsDuplicates(t *testing.T) {
	bus := newBus()
	_, err := NewService(bus, []types.Game{{ID: "a", Title: "A"}, {ID: "a", Title: "B"}}, Options{}, zerolog.Nop())
	if err == nil {
		t.Fatalf("expected duplicate id error")
	}
	if got := bus.Stats().Listeners; got != 0 {
		t.Fatalf("failed service leaked %d listeners", got)
	}
}

func TestServiceRender(t *testing.T) {
	s, bus := newTestService(t, Options{DefaultLang: "de"})

	var shown []event.Payload
	_ = bus.Subscribe(event.SplashShown, event.ListenerFunc(func(p event.Payload, _ event.Scope) error {
		shown = append(shown, p)
		return nil
	}), "test")

	m, err := s.Render("snake", language.Und)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if m.Lang != "de" {
		t.Fatalf("expected default language de, got %q", m.Lang)
	}
	if _, err := s.Render("snake", language.Dutch); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(shown) != 2 || shown[0]["game"] != "snake" || shown[1]["lang"] != "nl" {
		t.Fatalf("unexpected splashShown payloads: %v", shown)
	}

	if _, err := s.Render("pong", language.English); !IsGameNotFound(err) {
		t.Fatalf("expected game not found, got %v", err)
	}
}

func TestServicePlay(t *testing.T) {
	s, _ := newTestService(t, Options{})

	p, err := s.Play("tetris", event.Payload{"game": "snake", "source": "test"})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if p["game"] != "tetris" || p["name"] != "playClick" || p["source"] != "test" {
		t.Fatalf("unexpected payload %v", p)
	}
	st := s.Status()
	for _, sp := range st.Splashes {
		switch sp.GameID {
		case "tetris":
			if !sp.Dismissed || sp.Plays != 1 {
				t.Fatalf("tetris should be dismissed: %+v", sp)
			}
		case "snake":
			if sp.Dismissed || sp.Plays != 0 {
				t.Fatalf("snake should be untouched: %+v", sp)
			}
		}
	}
	if _, err := s.Play("pong", nil); !IsGameNotFound(err) {
		t.Fatalf("expected game not found, got %v", err)
	}
}

func TestServicePublish(t *testing.T) {
	s, bus := newTestService(t, Options{})
	var got event.Payload
	_ = bus.Subscribe("gameStart", event.ListenerFunc(func(p event.Payload, _ event.Scope) error {
		got = p
		return nil
	}), "test")

	if _, err := s.Publish("gameStart", event.Payload{"level": 3}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if got["level"] != 3 || got["name"] != "gameStart" {
		t.Fatalf("unexpected payload %v", got)
	}
	if _, err := s.Publish("", nil); !event.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestServiceStatus(t *testing.T) {
	s, _ := newTestService(t, Options{})
	st := s.Status()
	if st.Events["playClick"] != 2 || st.Events["configReloaded"] != 1 {
		t.Fatalf("unexpected events %v", st.Events)
	}
	if st.Listeners != 3 || st.FailurePolicy != "fail-fast" || len(st.Splashes) != 2 {
		t.Fatalf("unexpected status %+v", st)
	}
}

func TestServiceReloadViaEvent(t *testing.T) {
	s, bus := newTestService(t, Options{})
	if _, err := s.Play("snake", nil); err != nil {
		t.Fatalf("Play: %v", err)
	}

	if _, err := bus.Broadcast(event.ConfigReloaded, event.Payload{"options": Options{Prefix: "zz-"}}); err != nil {
		t.Fatalf("reload: %v", err)
	}
	m, err := s.Render("snake", language.English)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if m.ContainerID != "zz-splash" {
		t.Fatalf("expected new prefix, got %q", m.ContainerID)
	}
	if st := s.Status(); st.Events["playClick"] != 2 || st.Splashes[0].Dismissed {
		t.Fatalf("reload should replace builders: %+v", st)
	}

	// Bad options keep the previous builders.
	if _, err := bus.Broadcast(event.ConfigReloaded, event.Payload{"options": Options{Prefix: "9"}}); err == nil {
		t.Fatalf("expected reload error")
	}
	if m, _ := s.Render("snake", language.English); m.ContainerID != "zz-splash" {
		t.Fatalf("failed reload changed builders")
	}
	// Reloads without options are ignored.
	if _, err := bus.Broadcast(event.ConfigReloaded, nil); err != nil {
		t.Fatalf("reload without options: %v", err)
	}
}

func TestServiceClose(t *testing.T) {
	bus := newBus()
	s, err := NewService(bus, testGames, Options{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	if !s.Ready() {
		t.Fatalf("new service should be ready")
	}
	s.Close()
	s.Close()
	if s.Ready() {
		t.Fatalf("closed service should not be ready")
	}
	if got := bus.Stats().Listeners; got != 0 {
		t.Fatalf("expected no listeners after close, got %d", got)
	}
	if err := s.Reconfigure(Options{}); err == nil {
		t.Fatalf("reconfigure after close should fail")
	}
}

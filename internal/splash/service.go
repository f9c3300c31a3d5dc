package splash

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"splashd/internal/event"
	"splashd/pkg/types"
)

// Service owns one Builder per game and is the entry point for the HTTP layer.
//
// It listens for event.ConfigReloaded; a payload carrying "options" (Options)
// rebuilds every builder with the new options.
type Service struct {
	bus   *event.Dispatcher
	log   zerolog.Logger
	start time.Time

	onReload event.ListenerFunc

	mu       sync.RWMutex
	opts     Options
	games    []types.Game
	builders map[string]*Builder
	closed   bool
}

// NewService builds a splash builder for every game.
func NewService(bus *event.Dispatcher, games []types.Game, opts Options, log zerolog.Logger) (*Service, error) {
	if bus == nil {
		return nil, errors.New("splash: nil dispatcher")
	}
	s := &Service{
		bus:   bus,
		log:   log,
		start: time.Now(),
		games: append([]types.Game(nil), games...),
	}
	builders, err := s.buildAll(opts)
	if err != nil {
		return nil, err
	}
	s.opts = opts.withDefaults()
	s.builders = builders

	s.onReload = s.handleReload
	if err := bus.Subscribe(event.ConfigReloaded, s.onReload, s); err != nil {
		closeAll(builders)
		return nil, err
	}
	return s, nil
}

func (s *Service) buildAll(opts Options) (map[string]*Builder, error) {
	builders := make(map[string]*Builder, len(s.games))
	for _, g := range s.games {
		if _, dup := builders[g.ID]; dup {
			closeAll(builders)
			return nil, fmt.Errorf("splash: duplicate game id %q", g.ID)
		}
		b, err := NewBuilder(s.bus, opts, g, s.log)
		if err != nil {
			closeAll(builders)
			return nil, fmt.Errorf("splash: game %q: %w", g.ID, err)
		}
		builders[g.ID] = b
	}
	return builders, nil
}

func closeAll(builders map[string]*Builder) {
	for _, b := range builders {
		b.Close()
	}
}

func (s *Service) handleReload(p event.Payload, _ event.Scope) error {
	opts, ok := p["options"].(Options)
	if !ok {
		return nil
	}
	return s.Reconfigure(opts)
}

// Reconfigure replaces every builder with one rendered from opts. Dismissal
// state starts over. On error the old builders stay in place.
func (s *Service) Reconfigure(opts Options) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("splash: service closed")
	}
	builders, err := s.buildAll(opts)
	if err != nil {
		return err
	}
	closeAll(s.builders)
	s.builders = builders
	s.opts = opts.withDefaults()
	s.log.Info().Int("games", len(builders)).Msg("splash: builders reconfigured")
	return nil
}

// Dispatcher returns the shared event dispatcher.
func (s *Service) Dispatcher() *event.Dispatcher { return s.bus }

// Games returns the registered games.
func (s *Service) Games() []types.Game {
	return append([]types.Game(nil), s.games...)
}

func (s *Service) builder(id string) (*Builder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.builders[id]
	if !ok {
		return nil, ErrGameNotFound(id)
	}
	return b, nil
}

// Render builds the overlay for a game and broadcasts event.SplashShown.
// language.Und selects the configured default language.
func (s *Service) Render(gameID string, tag language.Tag) (Markup, error) {
	b, err := s.builder(gameID)
	if err != nil {
		return Markup{}, err
	}
	if tag == language.Und {
		s.mu.RLock()
		tag = language.Make(s.opts.DefaultLang)
		s.mu.RUnlock()
	}
	m, err := b.Markup(tag)
	if err != nil {
		return Markup{}, err
	}
	if _, err := s.bus.Broadcast(event.SplashShown, event.Payload{"game": gameID, "lang": m.Lang}); err != nil {
		s.log.Warn().Err(err).Str("game", gameID).Msg("splash: splashShown listener failed")
	}
	return m, nil
}

// Play broadcasts a play click for gameID. fields may be nil; its "game" entry
// is always set to gameID.
func (s *Service) Play(gameID string, fields event.Payload) (event.Payload, error) {
	if _, err := s.builder(gameID); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = event.Payload{}
	}
	fields["game"] = gameID
	return s.bus.Broadcast(event.PlayClick, fields)
}

// Publish broadcasts an arbitrary event.
func (s *Service) Publish(name event.Name, payload event.Payload) (event.Payload, error) {
	if name == "" {
		return payload, fmt.Errorf("publish: empty event name: %w", event.ErrInvalidArgument)
	}
	return s.bus.Broadcast(name, payload)
}

// Status summarizes dispatcher and builder state.
func (s *Service) Status() types.StatusResponse {
	st := s.bus.Stats()
	events := make(map[string]int, len(st.Events))
	for name, n := range st.Events {
		events[name.String()] = n
	}

	s.mu.RLock()
	splashes := make([]types.SplashStatus, 0, len(s.games))
	for _, g := range s.games {
		if b, ok := s.builders[g.ID]; ok {
			splashes = append(splashes, types.SplashStatus{GameID: g.ID, Dismissed: b.Dismissed(), Plays: b.Plays()})
		}
	}
	s.mu.RUnlock()

	now := time.Now()
	return types.StatusResponse{
		Events:         events,
		Listeners:      st.Listeners,
		FailurePolicy:  s.bus.Policy().String(),
		Splashes:       splashes,
		UptimeSeconds:  int64(now.Sub(s.start).Seconds()),
		ServerTimeUnix: now.Unix(),
	}
}

// Ready reports whether the service accepts requests.
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.closed
}

// Close tears down every builder and the service's own subscriptions.
func (s *Service) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	builders := s.builders
	s.builders = nil
	s.mu.Unlock()

	closeAll(builders)
	s.bus.UnsubscribeScope(s)
}

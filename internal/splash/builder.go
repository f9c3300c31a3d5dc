package splash

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"splashd/internal/event"
	"splashd/pkg/types"
)

// Builder renders the splash overlay for one game and tracks whether the
// player dismissed it.
//
// A Builder subscribes to event.PlayClick with itself as scope when it is
// created, and removes that scope again in Close. Play clicks addressed to
// other games (payload "game") are ignored.
type Builder struct {
	bus  *event.Dispatcher
	opts Options
	game types.Game
	log  zerolog.Logger
	css  string

	// onPlay is kept so the same listener value is used for every subscribe.
	onPlay event.ListenerFunc

	mu        sync.Mutex
	dismissed bool
	plays     int
	closed    bool
}

// NewBuilder validates opts, pre-renders the stylesheet and subscribes the
// builder to play clicks.
func NewBuilder(bus *event.Dispatcher, opts Options, game types.Game, log zerolog.Logger) (*Builder, error) {
	if bus == nil {
		return nil, errors.New("splash: nil dispatcher")
	}
	if game.ID == "" {
		return nil, errors.New("splash: game id is required")
	}
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	css, err := renderCSS(opts.Prefix, game.Thumbnail)
	if err != nil {
		return nil, err
	}

	b := &Builder{
		bus:  bus,
		opts: opts,
		game: game,
		log:  log.With().Str("game", game.ID).Logger(),
		css:  css,
	}
	b.onPlay = b.handlePlay
	if err := bus.Subscribe(event.PlayClick, b.onPlay, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Game returns the game the builder renders.
func (b *Builder) Game() types.Game { return b.game }

// ContainerID is the id of the overlay's outer element.
func (b *Builder) ContainerID() string { return b.opts.Prefix + "splash" }

// Markup renders the overlay with the consent text in the language closest to tag.
func (b *Builder) Markup(tag language.Tag) (Markup, error) {
	texts := TextsFor(tag)
	html, err := renderOverlay(overlayData{
		P:           b.opts.Prefix,
		ContainerID: b.ContainerID(),
		Version:     b.opts.Version,
		Title:       b.game.Title,
		Consent:     b.opts.ConsentDomain,
		TermsURL:    TermsURL,
		Texts:       texts,
	})
	if err != nil {
		return Markup{}, err
	}
	return Markup{
		CSS:         b.css,
		HTML:        html,
		ContainerID: b.ContainerID(),
		HostID:      b.opts.SplashContainerID,
		Lang:        texts.Lang.String(),
		Title:       b.game.Title,
	}, nil
}

func (b *Builder) handlePlay(p event.Payload, _ event.Scope) error {
	if id, _ := p["game"].(string); id != "" && id != b.game.ID {
		return nil
	}
	b.mu.Lock()
	b.plays++
	first := !b.dismissed
	b.dismissed = true
	plays := b.plays
	b.mu.Unlock()

	b.log.Info().Int("plays", plays).Msg("splash: play clicked")
	if !first {
		return nil
	}
	_, err := b.bus.Broadcast(event.SplashClosed, event.Payload{"game": b.game.ID})
	return err
}

// Dismissed reports whether the play button was clicked.
func (b *Builder) Dismissed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dismissed
}

// Plays returns the number of play clicks received.
func (b *Builder) Plays() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.plays
}

// Close removes every listener registered with the builder as scope.
// It is safe to call more than once.
func (b *Builder) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()
	b.bus.UnsubscribeScope(b)
}

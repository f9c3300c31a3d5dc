package types

// GamesResponse wraps the list of games returned by GET /games.
type GamesResponse struct {
	// List of known games.
	Games []Game `json:"games"`
}

// MarkupResponse is returned by GET /splash/{gameID}/markup.
type MarkupResponse struct {
	// Game the markup was built for.
	// example: tower-defense
	GameID string `json:"game_id" example:"tower-defense"`
	// Language tag used for the consent text.
	// example: en
	Lang string `json:"lang" example:"en"`
	// Stylesheet for the splash overlay.
	CSS string `json:"css"`
	// Overlay markup.
	HTML string `json:"html"`
	// DOM id of the overlay container.
	// example: idhb-splash
	ContainerID string `json:"container_id" example:"idhb-splash"`
}

// BroadcastResponse is returned after an event was broadcast.
type BroadcastResponse struct {
	// Event name that was broadcast.
	// example: playClick
	Event string `json:"event" example:"playClick"`
	// Payload as delivered to listeners (with "name" filled in).
	Payload map[string]any `json:"payload"`
	// Listeners registered for the event at broadcast time.
	// example: 2
	Listeners int `json:"listeners" example:"2"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// SplashStatus summarizes one game's splash builder.
type SplashStatus struct {
	// example: tower-defense
	GameID string `json:"game_id" example:"tower-defense"`
	// True once the play button was clicked.
	// example: false
	Dismissed bool `json:"dismissed" example:"false"`
	// Number of play clicks received.
	// example: 3
	Plays int `json:"plays" example:"3"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Listener count per event name.
	Events map[string]int `json:"events"`
	// Total registered listeners.
	// example: 4
	Listeners int `json:"listeners" example:"4"`
	// Listener failure policy of the dispatcher.
	// example: fail-fast
	FailurePolicy string `json:"failure_policy" example:"fail-fast"`
	// Splash builders, one per game.
	Splashes []SplashStatus `json:"splashes"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}

// WsMessage is exchanged over GET /events/ws in both directions.
//
// Client to server types: "subscribe", "broadcast".
// Server to client types: "event", "subscribed", "error".
type WsMessage struct {
	Type    string         `json:"type"`
	Event   string         `json:"event,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
	Error   string         `json:"error,omitempty"`
}

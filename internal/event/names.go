package event

// Name identifies an event. Names are matched exactly.
type Name string

func (n Name) String() string { return string(n) }

// Splash overlay events.
const (
	PlayClick    Name = "playClick"
	SplashShown  Name = "splashShown"
	SplashClosed Name = "splashClosed"
)

// Game lifecycle events.
const (
	GameStart  Name = "gameStart"
	GamePause  Name = "gamePause"
	GameResume Name = "gameResume"
)

// ConfigReloaded is broadcast after the service configuration was re-read.
const ConfigReloaded Name = "configReloaded"

package types

// Game describes a game that can show a splash screen.
type Game struct {
	// Stable identifier for the game.
	// example: tower-defense
	ID string `json:"id" yaml:"id" toml:"id" validate:"required,max=128"`
	// Title shown under the play button.
	// example: Tower Defense
	Title string `json:"title" yaml:"title" toml:"title" validate:"required"`
	// Optional thumbnail image used as splash background.
	// example: https://img.example.com/td/512x512.jpg
	Thumbnail string `json:"thumbnail,omitempty" yaml:"thumbnail" toml:"thumbnail" validate:"omitempty,url"`
	// Optional free-form description.
	Description string `json:"description,omitempty" yaml:"description" toml:"description"`
}

package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"splashd/internal/common/fsutil"
	"splashd/internal/common/validate"
	"splashd/pkg/types"
)

// Scanner reads game descriptors from a directory.
type Scanner struct {
	// Extensions lists the accepted file extensions (lower case, with dot).
	Extensions []string
}

// NewScanner returns a Scanner accepting yaml, json and toml descriptors.
func NewScanner() *Scanner {
	return &Scanner{Extensions: []string{".yaml", ".yml", ".json", ".toml"}}
}

// Scan decodes every descriptor in dir. A descriptor without an id takes its
// file name (without extension) as id. Games are returned sorted by id.
func (s *Scanner) Scan(dir string) ([]types.Game, error) {
	abs, err := fsutil.AbsDir(dir)
	if err != nil {
		return nil, fmt.Errorf("games dir: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var games []types.Game
	seen := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if !s.accepts(ext) {
			continue
		}
		p := filepath.Join(abs, name)
		g, err := decodeGame(p, ext)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if g.ID == "" {
			g.ID = strings.TrimSuffix(name, filepath.Ext(name))
		}
		if err := validate.Struct(g); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if prev, dup := seen[g.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate game id %q (also in %s)", name, g.ID, prev)
		}
		seen[g.ID] = name
		games = append(games, g)
	}
	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })
	return games, nil
}

func (s *Scanner) accepts(ext string) bool {
	for _, x := range s.Extensions {
		if x == ext {
			return true
		}
	}
	return false
}

func decodeGame(path, ext string) (types.Game, error) {
	var g types.Game
	b, err := os.ReadFile(path)
	if err != nil {
		return g, err
	}
	switch ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &g)
	case ".json":
		err = json.Unmarshal(b, &g)
	case ".toml":
		err = toml.Unmarshal(b, &g)
	default:
		err = fmt.Errorf("unsupported descriptor extension: %s", ext)
	}
	return g, err
}

// LoadDir scans dir with the default Scanner.
func LoadDir(dir string) ([]types.Game, error) {
	return NewScanner().Scan(dir)
}

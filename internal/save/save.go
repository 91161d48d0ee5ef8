package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mcweebus/quietcurrent/internal/config"
	"github.com/mcweebus/quietcurrent/internal/game"
)

const FormatVersion = 2

var (
	ErrNoSave  = errors.New("no saved settlement")
	ErrCorrupt = errors.New("save record is corrupt")
)

// Store persists one settlement.
type Store interface {
	Load() (*game.World, error)
	Save(w *game.World) error
	Close() error
}

type envelope struct {
	FormatVersion int             `json:"format_version"`
	SavedAt       time.Time       `json:"saved_at"`
	World         json.RawMessage `json:"world"`
}

// Open picks the backend named in cfg.
func Open(cfg config.SaveConfig) (Store, error) {
	switch cfg.Backend {
	case "", "file":
		return NewFileStore(cfg.Path, cfg.Backups), nil
	case "sqlite":
		return OpenSQLite(cfg.Path, cfg.Backups)
	default:
		return nil, fmt.Errorf("unknown save backend %q", cfg.Backend)
	}
}

func encode(w *game.World, now time.Time) ([]byte, error) {
	world, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("encoding world: %w", err)
	}
	return json.MarshalIndent(envelope{
		FormatVersion: FormatVersion,
		SavedAt:       now.UTC(),
		World:         world,
	}, "", "  ")
}

// decode accepts an enveloped record or a bare world from format 1.
func decode(data []byte) (*game.World, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	raw := data
	if inner, ok := fields["world"]; ok {
		if _, versioned := fields["format_version"]; versioned {
			var env envelope
			if err := json.Unmarshal(data, &env); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
			}
			if env.FormatVersion > FormatVersion {
				return nil, fmt.Errorf("save format %d is newer than this build (%d)", env.FormatVersion, FormatVersion)
			}
			raw = inner
		}
	}
	if err := ValidateWorld(raw); err != nil {
		return nil, err
	}
	w, err := game.DecodeWorld(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return w, nil
}

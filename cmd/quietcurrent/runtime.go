package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mcweebus/quietcurrent/internal/chronicle"
	"github.com/mcweebus/quietcurrent/internal/config"
	"github.com/mcweebus/quietcurrent/internal/game"
	"github.com/mcweebus/quietcurrent/internal/play"
	"github.com/mcweebus/quietcurrent/internal/save"
)

// version, commit, date are injected at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const recentHistory = 60

// runtime is everything one sitting needs: the loaded config, the store and
// the controller wired to both chronicle sinks.
type runtime struct {
	cfg    *config.Config
	logger *slog.Logger
	store  save.Store
	csv    *chronicle.Writer
	ctrl   *play.Controller
	fresh  bool
	seed   int64
}

func openRuntime(configPath string, seed int64) (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger := cfg.Log.Logger(os.Stderr)
	slog.SetDefault(logger)

	if seed == 0 {
		seed = cfg.Game.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	variant, err := game.ParseVariant(cfg.Game.Variant)
	if err != nil {
		return nil, err
	}

	store, err := save.Open(cfg.Save)
	if err != nil {
		return nil, err
	}
	csv, err := chronicle.OpenWriter(cfg.Chronicle.Path)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	w, fresh, err := play.LoadOrCreate(store, "", variant, seed)
	if err != nil {
		_ = csv.Close()
		_ = store.Close()
		return nil, fmt.Errorf("loading settlement: %w", err)
	}

	sinks := []chronicle.Sink{}
	if csv != nil {
		sinks = append(sinks, csv)
	}
	var recent []chronicle.Entry
	if db, ok := store.(*save.SQLiteStore); ok {
		sinks = append(sinks, chronicle.SinkFunc(db.AppendChronicle))
		if recent, err = db.RecentChronicle(recentHistory); err != nil {
			logger.Warn("reading chronicle", "err", err)
		}
	}

	ctrl := play.New(game.NewSession(w, game.SessionRand(w, time.Now())), play.Options{
		Store:  store,
		Sink:   chronicle.Tee(sinks...),
		Logger: logger,
	})
	for _, e := range recent {
		ctrl.History.Add(e)
	}

	logger.Info("settlement opened",
		"backend", cfg.Save.Backend,
		"path", cfg.Save.Path,
		"fresh", fresh,
		"world", w,
	)
	return &runtime{
		cfg:    cfg,
		logger: logger,
		store:  store,
		csv:    csv,
		ctrl:   ctrl,
		fresh:  fresh,
		seed:   seed,
	}, nil
}

// Close flushes the chronicle and releases the store. The front-end has
// already saved the world.
func (r *runtime) Close() error {
	return errors.Join(r.csv.Close(), r.store.Close())
}

func printVersion() {
	fmt.Printf("Quiet Current %s (%s) %s\n", version, commit, date)
}

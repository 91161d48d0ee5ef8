//go:build cgo

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mcweebus/quietcurrent/internal/gui"
	"github.com/mcweebus/quietcurrent/internal/ui"
)

func main() {
	var (
		showVersion bool
		console     bool
		configPath  string
		assetsDir   string
		seed        int64
	)

	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.BoolVar(&console, "console", false, "play in the terminal instead of a window")
	flag.StringVar(&configPath, "config", "", "path to a YAML config overlay")
	flag.StringVar(&assetsDir, "assets", "assets/ui", "directory holding the nine-slice skin")
	flag.Int64Var(&seed, "seed", 0, "world seed for a new settlement (0 = config, then clock)")
	flag.Parse()

	if showVersion {
		printVersion()
		return
	}

	rt, err := openRuntime(configPath, seed)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if console {
		err = ui.NewApp(ui.AppConfig{
			Version:    version,
			Commit:     commit,
			BuildDate:  date,
			Controller: rt.ctrl,
			Fresh:      rt.fresh,
			Seed:       rt.seed,
		}).Run()
	} else {
		err = gui.NewApp(gui.AppConfig{
			Version:    version,
			Commit:     commit,
			BuildDate:  date,
			Controller: rt.ctrl,
			Fresh:      rt.fresh,
			Seed:       rt.seed,
			Window:     rt.cfg.Window,
			AssetsDir:  assetsDir,
		}).Run()
	}
	if cerr := rt.Close(); cerr != nil {
		rt.logger.Error("closing", "err", cerr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

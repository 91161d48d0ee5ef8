//go:build !cgo

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mcweebus/quietcurrent/internal/ui"
)

func main() {
	var (
		showVersion bool
		console     bool
		configPath  string
		seed        int64
	)

	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.BoolVar(&console, "console", true, "play in the terminal (the only mode without cgo)")
	flag.StringVar(&configPath, "config", "", "path to a YAML config overlay")
	flag.Int64Var(&seed, "seed", 0, "world seed for a new settlement (0 = config, then clock)")
	flag.Parse()

	if showVersion {
		printVersion()
		return
	}
	if !console {
		fmt.Fprintln(os.Stderr, "this build has no window support; running in the terminal.")
	}

	rt, err := openRuntime(configPath, seed)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	err = ui.NewApp(ui.AppConfig{
		Version:    version,
		Commit:     commit,
		BuildDate:  date,
		Controller: rt.ctrl,
		Fresh:      rt.fresh,
		Seed:       rt.seed,
	}).Run()
	if cerr := rt.Close(); cerr != nil {
		rt.logger.Error("closing", "err", cerr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

/*
This is an example of application that will use the
engine package to test things out
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/aurora/engine"
	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/testbed"
)

const configPath = "config.toml"

func main() {
	cfg, err := engine.LoadApplicationConfig(configPath)
	if err != nil {
		core.LogWarn("%s, falling back to defaults", err)
		cfg = engine.DefaultApplicationConfig()
		if err := cfg.Validate(); err != nil {
			panic(err)
		}
	}

	tb, err := testbed.New(cfg)
	if err != nil {
		panic(err)
	}

	app, err := engine.New(tb.Game)
	if err != nil {
		panic(err)
	}

	if err := app.Initialize(); err != nil {
		panic(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	go func() {
		// a termination signal behaves like a quit request from the window
		<-sigCh
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_APPLICATION_QUIT,
		})
	}()

	// run engine
	if err := app.Run(); err != nil {
		panic(err)
	}

	if err := app.Shutdown(); err != nil {
		panic(err)
	}
}

/*
Sandbox entry point: runs the testbed application on whichever backend
the configuration selects.
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZiedYousfi/candidengine/engine"
	"github.com/ZiedYousfi/candidengine/engine/core"
	"github.com/ZiedYousfi/candidengine/testbed"

	// Registered backends.
	_ "github.com/ZiedYousfi/candidengine/engine/renderer/null"
	_ "github.com/ZiedYousfi/candidengine/engine/renderer/vulkan"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML configuration file")
	flag.Parse()

	tb, err := testbed.NewTestGame()
	if err != nil {
		panic(err)
	}
	if *configPath != "" {
		cfg, err := core.LoadConfig(*configPath)
		if err != nil {
			core.LogFatal("load config %s: %s", *configPath, err.Error())
		}
		tb.Config = cfg
	}

	eng, err := engine.New(tb.Game)
	if err != nil {
		panic(err)
	}
	if err := eng.Initialize(); err != nil {
		panic(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	go func() {
		<-sigCh
		_ = eng.Shutdown()
	}()

	if err := eng.Run(); err != nil {
		core.LogError("engine stopped: %s", err.Error())
	}
	_ = eng.Shutdown()
}

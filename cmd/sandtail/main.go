package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/vburojevic/sandtail/internal/cli"
	"github.com/vburojevic/sandtail/internal/config"
	"github.com/vburojevic/sandtail/internal/logging"
)

func main() {
	// Load configuration from files/environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	ctx := kong.Parse(&c,
		kong.Name("sandtail"),
		kong.Description("Tail files in cluster task sandboxes\n\nSTART HERE: sandtail tail <task> stdout"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
	)

	log := logging.New(c.Verbose || cfg.Verbose)
	defer func() { _ = log.Sync() }()

	globals := cli.NewGlobals(&c, cfg, log)
	if err := ctx.Run(globals); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package cli

import (
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/vburojevic/sandtail/internal/config"
)

// CLI is the root command structure for sandtail
type CLI struct {
	// Global flags
	Master  string `short:"m" help:"Cluster master URL (overrides config)"`
	Verbose bool   `short:"v" help:"Show debug diagnostics on stderr"`

	// Commands
	Tail    TailCmd    `cmd:"" default:"withargs" help:"Output the last part of files in a task's sandbox"`
	Tasks   TasksCmd   `cmd:"" help:"List cluster tasks"`
	Agents  AgentsCmd  `cmd:"" help:"List cluster agents"`
	Status  StatusCmd  `cmd:"" help:"Check cluster component health"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// Globals holds shared state for all commands
type Globals struct {
	Stdout io.Writer
	Stderr io.Writer
	Config *config.Config
	Log    *zap.SugaredLogger
}

// NewGlobals creates a new Globals instance from CLI flags and loaded config
func NewGlobals(c *CLI, cfg *config.Config, log *zap.SugaredLogger) *Globals {
	if c.Master != "" {
		cfg.Master = c.Master
	}
	return &Globals{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Config: cfg,
		Log:    log,
	}
}

// VersionCmd shows version information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run(globals *Globals) error {
	_, err := io.WriteString(globals.Stdout, "sandtail version "+Version+" ("+Commit+")\n")
	return err
}

// Version information (set at build time)
var (
	Version = "dev"
	Commit  = "none"
)

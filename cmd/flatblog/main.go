package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/flatblog"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	m := NewMain()
	if err := m.Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config is loaded before any subcommand runs.
	Config flatblog.SiteConfig

	// Logger writes to stderr. Set by Run.
	Logger *slog.Logger

	// Now stamps scaffolded posts.
	Now func() time.Time

	configFile string
	verbose    bool
	stdout     io.Writer
	stderr     io.Writer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Now: time.Now}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	m.stdout, m.stderr = stdout, stderr
	m.Logger = slog.New(slog.NewTextHandler(stderr, nil))

	root := m.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func (m *Main) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "flatblog",
		Short: "A flat-file Markdown blog server",
		Long: `flatblog serves a directory of Markdown posts with front matter as a blog:
an index of every post, one listing per category and a page per post.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return m.loadConfig(cmd)
		},
	}
	root.PersistentFlags().StringVar(&m.configFile, "config", "", "config file (default is ./flatblog.yaml)")
	root.PersistentFlags().BoolVarP(&m.verbose, "verbose", "v", false, "log debug messages")

	root.AddCommand(
		m.serveCommand(),
		m.listCommand(),
		m.newCommand(),
		m.versionCommand(),
	)
	return root
}

func (m *Main) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the flatblog version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "flatblog %s\n", version)
			return nil
		},
	}
}

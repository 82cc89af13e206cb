package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/flatblog"
	"github.com/eringen/flatblog/content"
	"github.com/eringen/flatblog/markdown"
	"github.com/eringen/flatblog/views"
)

const shutdownTimeout = 10 * time.Second

func (m *Main) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the blog over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return m.serve(cmd.Context())
		},
	}
	cmd.Flags().String("addr", "", `listen address (default ":3000")`)
	cmd.Flags().String("content", "", `content directory (default "content/posts")`)
	cmd.Flags().Bool("watch", false, "reload documents on file system events instead of rescanning per request")
	return cmd
}

// serve runs the server until ctx is done or the process is interrupted.
func (m *Main) serve(ctx context.Context) error {
	app, store, err := m.NewApp()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- app.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	m.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errc
}

// NewApp wires the content store, renderer and views for m.Config.
// The caller closes the returned store.
func (m *Main) NewApp() (*flatblog.App, *content.Store, error) {
	cfg := m.Config

	store, err := m.openStore(cfg.AutoReload)
	if err != nil {
		return nil, nil, err
	}

	var opts []views.Option
	if cfg.TemplateDir != "" {
		opts = append(opts, views.WithDir(cfg.TemplateDir))
	}
	v, err := views.New(cfg, opts...)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	app := flatblog.New(cfg, store, v.Funcs(), flatblog.WithLogger(m.Logger))
	return app, store, nil
}

func (m *Main) openStore(autoReload bool) (*content.Store, error) {
	cfg := m.Config

	md, err := markdown.New(cfg.MarkdownExtensions, markdown.WithHighlightStyle(cfg.HighlightStyle))
	if err != nil {
		return nil, err
	}

	opts := []content.Option{
		content.WithExtension(cfg.Extension),
		content.WithAutoReload(autoReload),
		content.WithRenderer(md),
		content.WithLogger(m.Logger),
	}
	if autoReload && cfg.Watch {
		opts = append(opts, content.WithWatcher())
	}
	return content.Open(cfg.ContentDir, opts...)
}

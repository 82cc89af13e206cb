package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/flatblog"
)

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"addr":    "addr",
	"content": "content_dir",
	"watch":   "watch",
}

func setDefaults(v *viper.Viper) {
	var cfg flatblog.SiteConfig
	cfg.SetDefaults()

	v.SetDefault("name", cfg.Name)
	v.SetDefault("url", cfg.URL)
	v.SetDefault("description", "")
	v.SetDefault("author", "")
	v.SetDefault("addr", cfg.Addr)
	v.SetDefault("content_dir", cfg.ContentDir)
	v.SetDefault("extension", cfg.Extension)
	v.SetDefault("auto_reload", true)
	v.SetDefault("watch", false)
	v.SetDefault("markdown_extensions", cfg.MarkdownExtensions)
	v.SetDefault("highlight_style", cfg.HighlightStyle)
	v.SetDefault("default_category", cfg.DefaultCategory)
	v.SetDefault("static_dir", cfg.StaticDir)
	v.SetDefault("template_dir", "")
	v.SetDefault("rate_limit", 0)
}

// loadConfig resolves m.Config from defaults, flatblog.yaml, FLATBLOG_*
// environment variables and the flags of cmd, in increasing precedence.
func (m *Main) loadConfig(cmd *cobra.Command) error {
	if m.verbose {
		m.Logger = slog.New(slog.NewTextHandler(m.stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	v := viper.New()
	setDefaults(v)

	if m.configFile != "" {
		v.SetConfigFile(m.configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("flatblog")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("FLATBLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
		m.Logger.Debug("no config file found, using defaults and environment")
	} else {
		m.Logger.Debug("using config file", "path", v.ConfigFileUsed())
	}

	var cfg flatblog.SiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	cfg.SetDefaults()

	// Relative directories written in a config file are relative to that file.
	if used := v.ConfigFileUsed(); used != "" {
		base := filepath.Dir(used)
		if fromFile(v, cmd, "content_dir") {
			cfg.ContentDir = resolve(base, cfg.ContentDir)
		}
		if fromFile(v, cmd, "static_dir") {
			cfg.StaticDir = resolve(base, cfg.StaticDir)
		}
		if fromFile(v, cmd, "template_dir") {
			cfg.TemplateDir = resolve(base, cfg.TemplateDir)
		}
	}

	m.Config = cfg
	return nil
}

func resolve(base, dir string) string {
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}

// fromFile reports whether the value of key came from the config file
// rather than a flag or the environment.
func fromFile(v *viper.Viper, cmd *cobra.Command, key string) bool {
	if !v.InConfig(key) {
		return false
	}
	for flag, k := range flagKeys {
		if k != key {
			continue
		}
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			return false
		}
	}
	_, env := os.LookupEnv("FLATBLOG_" + strings.ToUpper(key))
	return !env
}

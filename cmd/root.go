// Package cmd wires configuration, logging and the two terminal surfaces
// behind the voidshell root command.
package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Necromancer-Labs/voidshell/internal/config"
	"github.com/Necromancer-Labs/voidshell/internal/i18n"
	"github.com/Necromancer-Labs/voidshell/internal/logging"
	"github.com/Necromancer-Labs/voidshell/internal/portfolio"
	"github.com/Necromancer-Labs/voidshell/internal/session"
	"github.com/Necromancer-Labs/voidshell/internal/shell"
	"github.com/Necromancer-Labs/voidshell/internal/shell/commands"
	"github.com/Necromancer-Labs/voidshell/internal/tui"
	"github.com/Necromancer-Labs/voidshell/internal/ui/theme"
	"github.com/Necromancer-Labs/voidshell/internal/webapi"
)

const Version = "0.1.0"

// ipLookupTimeout bounds the blocking IP lookup of the plain shell.
const ipLookupTimeout = 3 * time.Second

var (
	configPath string
	lang       string
	themeName  string
	plain      bool
	logFile    string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "voidshell",
	Short: "A portfolio that lives in a fake terminal",
	Long: `voidshell - a terminal portfolio.

Browse a small virtual filesystem, read the about/resume/projects pages,
connect to fictional hosts and watch simulated scans, downloads and htop.

Usage:
  voidshell            Full-screen terminal
  voidshell --plain    Line-mode shell (readline)`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	flags.StringVar(&lang, "lang", "", "initial language (en, es)")
	flags.StringVar(&themeName, "theme", "", "initial theme")
	flags.BoolVar(&plain, "plain", false, "use the line-mode shell instead of the full-screen UI")
	flags.StringVar(&logFile, "log-file", "", "write logs to this file")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := logging.Init(logging.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		OutputPath: cfg.Log.File,
	}); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logging.Sync()

	cat, err := i18n.Load()
	if err != nil {
		return err
	}
	if !cat.Supported(cfg.Lang) {
		return errors.Errorf("unsupported language %q", cfg.Lang)
	}
	palette, ok := portfolio.ThemeFor(cfg.Theme)
	if !ok || !theme.Use(palette) {
		return errors.Errorf("unknown theme %q", cfg.Theme)
	}

	client := webapi.New(cfg.Weather.BaseURL, cfg.Weather.APIKey, cfg.IPLookupURL)
	cmds := commands.New(commands.Deps{
		Catalog: cat,
		Weather: client,
		Home:    cfg.Home,
	})
	s, err := session.New(session.Options{
		Table:        cmds.Table(),
		Catalog:      cat,
		Lang:         cfg.Lang,
		Home:         cfg.Home,
		User:         cfg.User,
		Host:         cfg.Host,
		HistoryLimit: cfg.HistoryLimit,
		Logger:       logging.L(),
	})
	if err != nil {
		return err
	}

	logging.L().Info("starting voidshell",
		zap.String("version", Version),
		zap.String("lang", cfg.Lang),
		zap.String("theme", palette),
		zap.Bool("plain", plain),
	)

	if plain {
		ctx, cancel := context.WithTimeout(context.Background(), ipLookupTimeout)
		ip, err := client.PublicIP(ctx)
		cancel()
		if err != nil {
			logging.L().Warn("public ip lookup failed", zap.Error(err))
		} else {
			s.SetIP(ip)
		}
		return shell.RunShell(s, cat, historyPath())
	}
	return tui.Run(s, client.PublicIP, cfg.MobileWidth)
}

// loadConfig reads the config file and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("lang") {
		cfg.Lang = lang
	}
	if flags.Changed("theme") {
		cfg.Theme = themeName
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	return cfg, nil
}

// historyPath keeps the plain shell history next to the config file.
func historyPath() string {
	dir := filepath.Dir(config.DefaultPath())
	if configPath != "" {
		dir = filepath.Dir(configPath)
	}
	return filepath.Join(dir, "history")
}

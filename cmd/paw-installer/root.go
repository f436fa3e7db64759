package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pocketpaw/pocketpaw-installer/internal/config"
	"github.com/pocketpaw/pocketpaw-installer/internal/logging"
	"github.com/pocketpaw/pocketpaw-installer/internal/messages"
)

const (
	flagConfig     = "config"
	flagDir        = "dir"
	flagLogLevel   = "log-level"
	flagQuiet      = "quiet"
	flagQuietShort = "q"
)

var loadConfigFunc = config.Load

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	dir        string
	logLevel   string
	quiet      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().BoolP("version", "v", false, messages.RootVersionFlag)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, flagConfig, "", messages.RootFlagConfig)
	flags.StringVar(&opts.dir, flagDir, "", messages.RootFlagDir)
	flags.StringVar(&opts.logLevel, flagLogLevel, "", messages.RootFlagLogLevel)
	flags.BoolVarP(&opts.quiet, flagQuiet, flagQuietShort, false, messages.RootFlagQuiet)

	cmd.AddCommand(
		newInstallCmd(opts),
		newChainCmd(),
		newDoctorCmd(opts),
	)
	return cmd
}

// session is the configuration and logger a command runs with.
type session struct {
	cfg    *config.Config
	paths  config.Paths
	logger *slog.Logger
	close  func() error
}

// openSession resolves the install directory, loads installer.toml and builds
// the logger. Console logs go to stderr unless --quiet is set.
func (o *rootOptions) openSession(stderr io.Writer) (*session, error) {
	dir, err := config.ResolveDir(o.dir)
	if err != nil {
		return nil, fmt.Errorf(messages.RootInstallDirFmt, err)
	}
	paths := config.DefaultPaths(dir)
	configPath := paths.ConfigPath
	if strings.TrimSpace(o.configPath) != "" {
		configPath = o.configPath
	}
	cfg, err := loadConfigFunc(configPath, dir)
	if err != nil {
		return nil, err
	}
	if cfg.Install.Dir != "" && cfg.Install.Dir != dir {
		relocated, err := config.ResolveDir(cfg.Install.Dir)
		if err != nil {
			return nil, fmt.Errorf(messages.RootInstallDirFmt, err)
		}
		paths = config.DefaultPaths(relocated)
	}

	level := cfg.Log.Level
	if o.logLevel != "" {
		if !validLogLevel(o.logLevel) {
			return nil, fmt.Errorf(messages.RootInvalidLogLevelFmt, o.logLevel)
		}
		level = o.logLevel
	}
	logOpts := logging.Options{Level: level, Format: cfg.Log.Format}
	if !o.quiet {
		logOpts.Console = stderr
	}
	if cfg.LogToFile() {
		logOpts.FilePath = paths.LogPath
	}
	logger, closeFn, err := logging.New(logOpts)
	if err != nil {
		return nil, fmt.Errorf(messages.RootOpenLogFmt, err)
	}
	return &session{cfg: cfg, paths: paths, logger: logger, close: closeFn}, nil
}

func validLogLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info", "warn", "warning", "error":
		return true
	default:
		return false
	}
}

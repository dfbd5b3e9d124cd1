package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/opcpack/pkg/buildinfo"
	"github.com/matzehuels/opcpack/pkg/errors"
	"github.com/matzehuels/opcpack/pkg/opc"
	"github.com/matzehuels/opcpack/pkg/packuri"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "opcpack"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Save formats accepted by --format on repack and new.
const (
	formatZip = "zip"
	formatDir = "dir"
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger and default config.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "opcpack reads and writes OPC presentation packages",
		Long: `opcpack opens Open Packaging Convention presentation packages (.pptx files or
expanded directories), shows their part graph and writes them back out.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/opcpack/config.toml)")

	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.typesCommand())
	root.AddCommand(c.relsCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.repackCommand())
	root.AddCommand(c.newCommand())
	root.AddCommand(c.catCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file, applies the log level and attaches the
// logger to the command context.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	level := LogInfo
	if c.verbose || cfg.Verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Package Helpers
// =============================================================================

// openPackage opens the package at path with the context logger attached.
func openPackage(ctx context.Context, path string) (*opc.Package, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	return opc.Open(path, opc.WithLogger(loggerFromContext(ctx)))
}

// parsePartname accepts a partname with or without its leading slash.
func parsePartname(s string) (packuri.URI, error) {
	return packuri.FromMemberName(s)
}

// saveTarget adjusts dst so that [opc.Package.Save] produces the requested
// container format. An empty format leaves the choice to the path.
func saveTarget(dst, format string) (string, error) {
	if err := errors.ValidatePath(dst); err != nil {
		return "", err
	}
	hasSep := strings.HasSuffix(dst, "/") || strings.HasSuffix(dst, string(os.PathSeparator))

	switch format {
	case "":
		return dst, nil
	case formatDir:
		if hasSep {
			return dst, nil
		}
		return dst + string(os.PathSeparator), nil
	case formatZip:
		if hasSep {
			return "", errors.New(errors.ErrCodeInvalidPath, "zip destination %q ends with a separator", dst)
		}
		if info, err := os.Stat(dst); err == nil && info.IsDir() {
			return "", errors.New(errors.ErrCodeInvalidPath, "zip destination %q is a directory", dst)
		}
		return dst, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want %s or %s)", format, formatZip, formatDir)
	}
}

func isJSONPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

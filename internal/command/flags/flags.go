// Package flags holds the flags and loading logic shared by every oidtree
// command.
package flags

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/lukeod/oidtree"
	"github.com/mitchellh/cli"
)

// EnvLogLevel overrides the default of -log-level.
const EnvLogLevel = "OIDTREE_LOG_LEVEL"

var allowedLogLevels = []string{"TRACE", "DEBUG", "INFO", "WARN", "ERR", "ERROR"}

// LoadFlags are the flags that control how declaration files are read and
// how the tree is built.
type LoadFlags struct {
	logLevel  string
	logJSON   bool
	maxPasses int
	plugin    string
	recursive bool
}

// Flags returns a FlagSet bound to f.
func (f *LoadFlags) Flags() *flag.FlagSet {
	level := os.Getenv(EnvLogLevel)
	if level == "" {
		level = "warn"
	}

	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.StringVar(&f.logLevel, "log-level", level,
		"Log level: trace, debug, info, warn or error. Defaults to the "+
			EnvLogLevel+" environment variable, then warn.")
	fs.BoolVar(&f.logJSON, "log-json", false,
		"Write log lines as JSON.")
	fs.IntVar(&f.maxPasses, "max-passes", 0,
		"Stop after this many insertion passes. 0 means no limit.")
	fs.StringVar(&f.plugin, "plugin", "",
		"Path to a WebAssembly MIB parser. Files with no known declaration "+
			"format are handed to it as MIB text.")
	fs.BoolVar(&f.recursive, "recursive", false,
		"Walk subdirectories of directory arguments.")
	return fs
}

// Logger builds the logger selected by -log-level. Log lines are written to
// the UI's error stream.
func (f *LoadFlags) Logger(ui cli.Ui) (hclog.Logger, error) {
	if !validLogLevel(f.logLevel) {
		return nil, fmt.Errorf("invalid log level: %s. Valid log levels are: %v",
			f.logLevel, allowedLogLevels)
	}
	level := f.logLevel
	if strings.EqualFold(level, "ERR") {
		level = "ERROR"
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       "oidtree",
		Level:      hclog.LevelFromString(level),
		Output:     &uiErrorWriter{ui: ui},
		JSONFormat: f.logJSON,
	}), nil
}

func validLogLevel(level string) bool {
	upper := strings.ToUpper(level)
	for _, l := range allowedLogLevels {
		if l == upper {
			return true
		}
	}
	return false
}

// Build reads every path and builds the tree. Directories are read with
// oidtree.LoadDir; files that fail to decode inside a directory are logged
// and skipped, while a failing file argument fails the build.
func (f *LoadFlags) Build(ctx context.Context, logger hclog.Logger, paths []string) (*oidtree.Tree, *oidtree.Report, error) {
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("at least one declaration file or directory is required")
	}

	var plugin *oidtree.Plugin
	if f.plugin != "" {
		wasm, err := os.ReadFile(f.plugin)
		if err != nil {
			return nil, nil, fmt.Errorf("reading plugin: %w", err)
		}
		plugin, err = oidtree.NewPlugin(ctx, wasm)
		if err != nil {
			return nil, nil, fmt.Errorf("loading plugin %s: %w", f.plugin, err)
		}
		defer plugin.Close(ctx)
	}

	sources := make([]oidtree.Source, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, nil, err
		}
		if !info.IsDir() {
			sources = append(sources, oidtree.FileSource{Path: path, Plugin: plugin})
			continue
		}
		dirLogger := logger.With("dir", path)
		sources = append(sources, oidtree.DirSource{
			Dir: path,
			Options: oidtree.LoadDirOptions{
				Recursive: f.recursive,
				Plugin:    plugin,
				OnError: func(file string, err error) {
					dirLogger.Warn("skipping file", "file", file, "error", err)
				},
			},
		})
	}

	return oidtree.BuildFrom(ctx, oidtree.BuildOptions{
		Logger:    logger,
		MaxPasses: f.maxPasses,
	}, sources...)
}

// Merge copies every flag of src into dst.
func Merge(dst, src *flag.FlagSet) {
	if dst == nil {
		panic("dst cannot be nil")
	}
	if src == nil {
		return
	}
	src.VisitAll(func(f *flag.Flag) {
		dst.Var(f.Value, f.Name, f.Usage)
	})
}

// Usage appends the defaults of fs to txt, indented to match the help
// text of the commands.
func Usage(txt string, fs *flag.FlagSet) string {
	var buf bytes.Buffer
	buf.WriteString(strings.TrimSpace(txt))
	buf.WriteString("\n\nOptions:\n\n")

	fs.VisitAll(func(f *flag.Flag) {
		name, usage := flag.UnquoteUsage(f)
		fmt.Fprintf(&buf, "  -%s", f.Name)
		if name != "" {
			fmt.Fprintf(&buf, "=<%s>", name)
		}
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" {
			fmt.Fprintf(&buf, "\n     Default: %s", f.DefValue)
		}
		fmt.Fprintf(&buf, "\n     %s\n\n", usage)
	})
	return strings.TrimRight(buf.String(), "\n")
}

type uiErrorWriter struct {
	ui cli.Ui
}

var _ io.Writer = (*uiErrorWriter)(nil)

func (w *uiErrorWriter) Write(p []byte) (int, error) {
	w.ui.Error(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

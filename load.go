package oidtree

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Source supplies declaration records. Order and uniqueness are not
// required: Build tolerates both.
type Source interface {
	Declarations(ctx context.Context) ([]Declaration, error)
}

// StaticSource is an in-memory Source.
type StaticSource []Declaration

// Declarations returns a copy of the records.
func (s StaticSource) Declarations(context.Context) ([]Declaration, error) {
	result := make([]Declaration, len(s))
	copy(result, s)
	return result, nil
}

// Format identifies an encoding of declaration files.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatYAML           // .yaml, .yml and .json
	FormatHCL            // .hcl
	FormatBinary         // .oidb
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatHCL:
		return "hcl"
	case FormatBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// FormatForPath picks the format from a file's extension.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return FormatYAML
	case ".hcl":
		return FormatHCL
	case ".oidb":
		return FormatBinary
	default:
		return FormatUnknown
	}
}

// ParseFile decodes src according to format. name is used in messages.
func ParseFile(format Format, name string, src []byte) ([]Declaration, error) {
	switch format {
	case FormatYAML:
		return ParseYAML(src)
	case FormatHCL:
		return ParseHCL(src, name)
	case FormatBinary:
		return DecodeDeclarations(src)
	default:
		return nil, fmt.Errorf("%s: unrecognized declaration file format", name)
	}
}

// FileSource reads declarations from a single file. The format is taken
// from the extension; files with any other extension are handed to Plugin
// as raw MIB text when Plugin is set. The plugin is reset first, so only
// this file's declarations are returned.
type FileSource struct {
	Path   string
	Plugin *Plugin
}

// Declarations reads and decodes the file.
func (s FileSource) Declarations(ctx context.Context) ([]Declaration, error) {
	source, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}
	format := FormatForPath(s.Path)
	if format == FormatUnknown && s.Plugin != nil {
		s.Plugin.Reset(ctx)
		if err := s.Plugin.LoadModule(ctx, source); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", s.Path, err)
		}
		return s.Plugin.Declarations(ctx)
	}
	decls, err := ParseFile(format, s.Path, source)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.Path, err)
	}
	return decls, nil
}

// LoadFiles reads declarations from every path, in order.
//
// Example:
//
//	decls, err := oidtree.LoadFiles(ctx, "SNMPv2-SMI.yaml", "IF-MIB.hcl")
func LoadFiles(ctx context.Context, paths ...string) ([]Declaration, error) {
	var decls []Declaration
	var merr *multierror.Error
	for _, path := range paths {
		d, err := FileSource{Path: path}.Declarations(ctx)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		decls = append(decls, d...)
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return decls, nil
}

// LoadDirOptions configures LoadDir behavior.
type LoadDirOptions struct {
	// Extensions filters files by extension. If empty, every file with a
	// known declaration format is read.
	// Extensions should include the dot, e.g., []string{".yaml", ".hcl"}.
	// Matching ignores case.
	Extensions []string

	// Recursive controls whether subdirectories are walked.
	Recursive bool

	// Plugin, if set, parses files with no known declaration format as
	// MIB text.
	Plugin *Plugin

	// OnError is called for each file that fails to read or decode.
	// If nil, such files are silently skipped.
	OnError func(path string, err error)
}

// LoadDir reads declarations from the files of a directory.
//
// Files that fail to decode are skipped (and passed to OnError); only a
// failure to walk the directory itself is returned as an error. Paths
// passed to OnError are relative to dir.
func LoadDir(ctx context.Context, dir string, opts LoadDirOptions) ([]Declaration, error) {
	return loadTree(ctx, os.DirFS(dir), ".", opts)
}

// DirSource reads declarations from a directory with LoadDir.
type DirSource struct {
	Dir     string
	Options LoadDirOptions
}

// Declarations walks the directory.
func (s DirSource) Declarations(ctx context.Context) ([]Declaration, error) {
	return LoadDir(ctx, s.Dir, s.Options)
}

// LoadFS reads declarations from the files of an fs.FS (e.g., embed.FS),
// walking it recursively from root.
//
// Example with embedded files:
//
//	//go:embed mibs/*
//	var mibsFS embed.FS
//
//	decls, err := oidtree.LoadFS(ctx, mibsFS, "mibs", oidtree.LoadDirOptions{Recursive: true})
func LoadFS(ctx context.Context, fsys fs.FS, root string, opts LoadDirOptions) ([]Declaration, error) {
	return loadTree(ctx, fsys, root, opts)
}

func loadTree(ctx context.Context, fsys fs.FS, root string, opts LoadDirOptions) ([]Declaration, error) {
	extSet := make(map[string]bool)
	for _, ext := range opts.Extensions {
		extSet[strings.ToLower(ext)] = true
	}
	onError := func(path string, err error) {
		if opts.OnError != nil {
			opts.OnError(path, err)
		}
	}

	if opts.Plugin != nil {
		opts.Plugin.Reset(ctx)
	}

	var decls []Declaration
	pluginFiles := 0
	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			onError(path, err)
			return nil // Ignore permission errors, etc.
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() {
			if !opts.Recursive && path != root {
				return fs.SkipDir
			}
			return nil
		}

		// Check extension if filter is set
		if len(extSet) > 0 && !extSet[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		format := FormatForPath(path)
		if format == FormatUnknown && opts.Plugin == nil {
			return nil
		}

		source, err := fs.ReadFile(fsys, path)
		if err != nil {
			onError(path, err)
			return nil
		}

		if format == FormatUnknown {
			if err := opts.Plugin.LoadModule(ctx, source); err != nil {
				onError(path, err)
				return nil
			}
			pluginFiles++
			return nil
		}

		parsed, err := ParseFile(format, path, source)
		if err != nil {
			onError(path, err)
			return nil
		}
		decls = append(decls, parsed...)
		return nil
	}

	if err := fs.WalkDir(fsys, root, walkFn); err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	if pluginFiles > 0 {
		fromPlugin, err := opts.Plugin.Declarations(ctx)
		if err != nil {
			return nil, err
		}
		decls = append(decls, fromPlugin...)
	}
	return decls, nil
}

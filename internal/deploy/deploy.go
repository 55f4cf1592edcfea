// Package deploy copies finished deck artifacts from the output directory
// to a destination folder: either the user's Downloads directory (local
// mode) or a configured shared folder (remote mode, the default).
package deploy

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ArtifactExt is the extension of deployable deck artifacts.
const ArtifactExt = ".html"

var (
	ErrConfigMissing      = errors.New("deploy configuration missing")
	ErrConfigIncomplete   = errors.New("deploy configuration incomplete")
	ErrDestinationMissing = errors.New("destination directory missing")
	ErrFileNotFound       = errors.New("artifact not found")
)

// Options carries everything a deploy run needs. No ambient lookups happen
// beyond the two paths named here.
type Options struct {
	SourceDir  string
	ConfigFile string
	Local      bool
	// Filename selects a single artifact; empty means deploy all.
	Filename string
}

// Destination is the resolved deploy target.
type Destination struct {
	Label string
	Path  string
}

// Result reports what a deploy run did.
type Result struct {
	Files       []string
	Destination Destination
	// Notify is non-nil when the configuration enables AMQP notification.
	Notify *NotifyConfig
}

// Resolve determines the destination directory before any file is touched.
// Local mode uses (and creates) the Downloads folder and never reads the
// configuration. Remote mode reads the configuration file and requires the
// configured path to already exist, since a missing path usually means an
// unmounted or unsynced share.
func Resolve(opts Options) (dest Destination, cfg *Config, err error) {
	if opts.Local {
		var home string
		if home, err = os.UserHomeDir(); err != nil {
			err = fmt.Errorf("failed to locate home directory: %w", err)
			return
		}
		dest = Destination{Label: "Downloads", Path: filepath.Join(home, "Downloads")}
		if err = os.MkdirAll(dest.Path, 0o755); err != nil {
			err = fmt.Errorf("failed to create %s: %w", dest.Path, err)
			return
		}
		return
	}

	if cfg, err = LoadConfig(opts.ConfigFile); err != nil {
		return
	}

	if strings.TrimSpace(cfg.Destination) == "" {
		err = fmt.Errorf("%w: destination is not set in %s", ErrConfigIncomplete, opts.ConfigFile)
		return
	}

	info, serr := os.Stat(cfg.Destination)
	switch {
	case serr != nil:
		err = fmt.Errorf("%w: %s does not exist (is the shared folder mounted and synced?)", ErrDestinationMissing, cfg.Destination)
		return
	case !info.IsDir():
		err = fmt.Errorf("%w: %s is not a directory", ErrDestinationMissing, cfg.Destination)
		return
	}

	dest = Destination{Label: "shared folder", Path: cfg.Destination}
	return
}

// Run resolves the destination and copies the selected artifacts into it.
// Copies overwrite same-named files at the destination; the artifacts are
// regenerated wholesale upstream, so the destination always mirrors the
// latest output.
func Run(opts Options) (res Result, err error) {
	var cfg *Config
	if res.Destination, cfg, err = Resolve(opts); err != nil {
		return
	}
	if cfg != nil && cfg.Notify.URL != "" {
		res.Notify = &cfg.Notify
	}

	if opts.Filename != "" {
		src := filepath.Join(opts.SourceDir, opts.Filename)
		if _, serr := os.Stat(src); serr != nil {
			err = fmt.Errorf("%w: %s not found in %s", ErrFileNotFound, opts.Filename, opts.SourceDir)
			return
		}
		if err = copyFile(src, filepath.Join(res.Destination.Path, opts.Filename)); err != nil {
			return
		}
		res.Files = append(res.Files, opts.Filename)
		return
	}

	var entries []os.DirEntry
	if entries, err = os.ReadDir(opts.SourceDir); err != nil {
		err = fmt.Errorf("failed to read source directory %s: %w", opts.SourceDir, err)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ArtifactExt) {
			continue
		}
		src := filepath.Join(opts.SourceDir, entry.Name())
		if err = copyFile(src, filepath.Join(res.Destination.Path, entry.Name())); err != nil {
			return
		}
		zap.L().Debug("artifact copied", zap.String("file", entry.Name()), zap.String("to", res.Destination.Path))
		res.Files = append(res.Files, entry.Name())
	}

	return
}

func copyFile(src, dst string) (err error) {
	var in *os.File
	if in, err = os.Open(src); err != nil {
		err = fmt.Errorf("failed to open %s: %w", src, err)
		return
	}
	defer in.Close()

	var out *os.File
	if out, err = os.Create(dst); err != nil {
		err = fmt.Errorf("failed to create %s: %w", dst, err)
		return
	}

	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		err = fmt.Errorf("failed to copy %s: %w", src, err)
		return
	}

	if err = out.Close(); err != nil {
		err = fmt.Errorf("failed to finish %s: %w", dst, err)
		return
	}
	return
}

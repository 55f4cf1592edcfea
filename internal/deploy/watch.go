package deploy

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch redeploys artifacts as they change. It blocks until ctx is
// cancelled, copying any artifact that is created or written in the source
// directory to the already-resolved destination. onDeploy is invoked with
// the artifact name after each successful copy.
func Watch(ctx context.Context, opts Options, dest Destination, onDeploy func(name string)) (err error) {
	var watcher *fsnotify.Watcher
	if watcher, err = fsnotify.NewWatcher(); err != nil {
		err = fmt.Errorf("failed to create watcher: %w", err)
		return
	}
	defer watcher.Close()

	if err = watcher.Add(opts.SourceDir); err != nil {
		err = fmt.Errorf("failed to watch %s: %w", opts.SourceDir, err)
		return
	}

	zap.L().Info("watching for artifacts", zap.String("dir", opts.SourceDir), zap.String("dest", dest.Path))

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			name := filepath.Base(event.Name)
			if !strings.HasSuffix(name, ArtifactExt) {
				continue
			}
			if cerr := copyFile(event.Name, filepath.Join(dest.Path, name)); cerr != nil {
				zap.L().Warn("failed to redeploy artifact", zap.String("file", name), zap.Error(cerr))
				continue
			}
			zap.L().Debug("artifact redeployed", zap.String("file", name))
			if onDeploy != nil {
				onDeploy(name)
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return
			}
			zap.L().Warn("watch error", zap.Error(werr))
		case <-ctx.Done():
			return
		}
	}
}

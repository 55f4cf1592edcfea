package deploy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "deploy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunDeploysAllArtifacts(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeArtifact(t, src, "a.html", "<html>a</html>")
	writeArtifact(t, src, "b.html", "<html>b</html>")
	writeArtifact(t, src, "notes.txt", "not an artifact")

	cfgDir := t.TempDir()
	cfg := writeConfig(t, cfgDir, "destination: "+dst+"\n")

	res, err := Run(Options{SourceDir: src, ConfigFile: cfg})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.html", "b.html"}, res.Files)
	assert.Equal(t, "shared folder", res.Destination.Label)
	assert.Nil(t, res.Notify)

	for _, name := range []string{"a.html", "b.html"} {
		want, rerr := os.ReadFile(filepath.Join(src, name))
		require.NoError(t, rerr)
		got, rerr := os.ReadFile(filepath.Join(dst, name))
		require.NoError(t, rerr)
		assert.Equal(t, want, got)
	}
	_, err = os.Stat(filepath.Join(dst, "notes.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunDeploysSingleArtifact(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeArtifact(t, src, "a.html", "<html>a</html>")
	writeArtifact(t, src, "b.html", "<html>b</html>")
	cfg := writeConfig(t, t.TempDir(), "destination: "+dst+"\n")

	res, err := Run(Options{SourceDir: src, ConfigFile: cfg, Filename: "b.html"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.html"}, res.Files)

	_, err = os.Stat(filepath.Join(dst, "b.html"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dst, "a.html"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunSingleArtifactMissing(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	cfg := writeConfig(t, t.TempDir(), "destination: "+dst+"\n")

	_, err := Run(Options{SourceDir: src, ConfigFile: cfg, Filename: "missing.html"})
	require.ErrorIs(t, err, ErrFileNotFound)
	assert.Contains(t, err.Error(), "missing.html")

	entries, rerr := os.ReadDir(dst)
	require.NoError(t, rerr)
	assert.Empty(t, entries, "destination must stay untouched")
}

func TestRunOverwritesExistingFiles(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeArtifact(t, src, "a.html", "new content")
	writeArtifact(t, dst, "a.html", "old content")
	cfg := writeConfig(t, t.TempDir(), "destination: "+dst+"\n")

	_, err := Run(Options{SourceDir: src, ConfigFile: cfg})
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dst, "a.html"))
	require.NoError(t, err)
	assert.Equal(t, "new content", string(got))
}

func TestResolveRemoteConfigMissing(t *testing.T) {
	_, _, err := Resolve(Options{
		SourceDir:  t.TempDir(),
		ConfigFile: filepath.Join(t.TempDir(), "deploy.yaml"),
	})
	require.ErrorIs(t, err, ErrConfigMissing)
	assert.Contains(t, err.Error(), "--local")
}

func TestResolveRemoteDestinationUnset(t *testing.T) {
	for _, content := range []string{"", "destination: \"\"\n", "destination: '   '\n"} {
		cfg := writeConfig(t, t.TempDir(), content)
		_, _, err := Resolve(Options{SourceDir: t.TempDir(), ConfigFile: cfg})
		require.ErrorIs(t, err, ErrConfigIncomplete)
		assert.Contains(t, err.Error(), "destination")
	}
}

func TestResolveRemoteDestinationMissing(t *testing.T) {
	gone := filepath.Join(t.TempDir(), "not-mounted")
	cfg := writeConfig(t, t.TempDir(), "destination: "+gone+"\n")

	_, _, err := Resolve(Options{SourceDir: t.TempDir(), ConfigFile: cfg})
	require.ErrorIs(t, err, ErrDestinationMissing)

	_, serr := os.Stat(gone)
	assert.True(t, os.IsNotExist(serr), "destination must not be auto-created")
}

func TestResolveRemoteDestinationIsFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "stories")
	require.NoError(t, os.WriteFile(blocker, []byte("not a folder"), 0o644))
	cfg := writeConfig(t, t.TempDir(), "destination: "+blocker+"\n")

	_, _, err := Resolve(Options{SourceDir: t.TempDir(), ConfigFile: cfg})
	require.ErrorIs(t, err, ErrDestinationMissing)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestResolveLocalNeedsNoConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dest, cfg, err := Resolve(Options{
		SourceDir:  t.TempDir(),
		ConfigFile: filepath.Join(t.TempDir(), "deploy.yaml"), // absent on purpose
		Local:      true,
	})
	require.NoError(t, err)
	assert.Nil(t, cfg)
	assert.Equal(t, "Downloads", dest.Label)
	assert.Equal(t, filepath.Join(home, "Downloads"), dest.Path)

	info, err := os.Stat(dest.Path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestRunLocalModeScenario(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	src := t.TempDir()
	writeArtifact(t, src, "a.html", "<html>a</html>")
	writeArtifact(t, src, "b.html", "<html>b</html>")

	res, err := Run(Options{SourceDir: src, Local: true})
	require.NoError(t, err)
	assert.Len(t, res.Files, 2)

	for _, name := range []string{"a.html", "b.html"} {
		_, serr := os.Stat(filepath.Join(home, "Downloads", name))
		require.NoError(t, serr)
	}
}

func TestRunNotifyConfigPassedThrough(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeArtifact(t, src, "a.html", "<html>a</html>")
	cfg := writeConfig(t, t.TempDir(),
		"destination: "+dst+"\nnotify:\n  url: amqp://localhost\n  queue: deploys\n")

	res, err := Run(Options{SourceDir: src, ConfigFile: cfg})
	require.NoError(t, err)
	require.NotNil(t, res.Notify)
	assert.Equal(t, "amqp://localhost", res.Notify.URL)
	assert.Equal(t, "deploys", res.Notify.Queue)
}

package update

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gdt-tools/gdtpack/pkg/logger"
	"github.com/gdt-tools/gdtpack/pkg/models"
	"github.com/gdt-tools/gdtpack/pkg/tools"
)

// ArtifactResolver makes sure the updater helper binary is present under
// the per-user application directory before a handoff is attempted.
type ArtifactResolver struct {
	httpClient *http.Client
	logger     *logger.Logger

	// dir overrides the cache directory; empty selects the per-user default.
	dir string
}

// NewArtifactResolver creates a resolver using the per-user cache directory.
func NewArtifactResolver(timeout time.Duration) *ArtifactResolver {
	return &ArtifactResolver{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.NewLogger("update-resolver"),
	}
}

// Resolve returns the local path of the updater binary, downloading it on
// first use. An existing file is reused as-is with no checksum or freshness
// check, so a cached helper survives application updates; the reuse is
// logged. When the metadata carries no updater URL the expected path is
// returned unchanged and the launcher decides whether the missing file is
// fatal. Resolve is idempotent: a second call finds the file and performs
// no download.
func (r *ArtifactResolver) Resolve(ctx context.Context, meta models.VersionMetadata) (string, error) {
	dir := r.dir
	if dir == "" {
		var err error
		dir, err = models.UpdaterDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve updater directory: %w", err)
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create updater directory: %w", err)
	}

	path := filepath.Join(dir, models.UpdaterBinaryName)
	if tools.FileExists(path) {
		r.logger.WithFields(logger.Fields{"path": path}).Info("Reusing cached updater binary")
		return path, nil
	}

	if meta.UpdaterDownloadURL == "" {
		r.logger.Warn("Release metadata carries no updater download URL")
		return path, nil
	}

	if err := r.download(ctx, meta.UpdaterDownloadURL, path); err != nil {
		return "", err
	}

	r.logger.WithFields(logger.Fields{
		"path": path,
		"url":  meta.UpdaterDownloadURL,
	}).Info("Updater binary downloaded")
	return path, nil
}

// download streams the helper into a temp file in the target directory and
// renames it into place, so a partial download never lands at the final path.
func (r *ArtifactResolver) download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build updater download request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download updater: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("updater download returned status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), models.UpdaterBinaryName+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tools.CopyWithContext(ctx, tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write updater: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync updater: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close updater file: %w", err)
	}

	if err := os.Chmod(tmpPath, 0755); err != nil {
		return fmt.Errorf("failed to set updater executable: %w", err)
	}
	if err := tools.MoveFile(r.logger, tmpPath, dest); err != nil {
		return fmt.Errorf("failed to move updater into place: %w", err)
	}
	return nil
}

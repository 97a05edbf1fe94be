package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gdt-tools/gdtpack/pkg/logger"
	"github.com/gdt-tools/gdtpack/pkg/models"
)

// Checker fetches the published release document.
type Checker struct {
	httpClient *http.Client
	url        string
	logger     *logger.Logger
}

// NewChecker creates a checker for the given metadata URL.
func NewChecker(metadataURL string, timeout time.Duration) *Checker {
	return &Checker{
		httpClient: &http.Client{Timeout: timeout},
		url:        metadataURL,
		logger:     logger.NewLogger("update-checker"),
	}
}

// Fetch retrieves the version metadata with a single GET. Transport
// failures, non-2xx statuses and unparseable bodies all wrap
// ErrNetworkUnavailable; the caller treats them as "no update this cycle".
// A parseable document missing fields yields empty strings, not an error.
func (c *Checker) Fetch(ctx context.Context) (models.VersionMetadata, error) {
	var meta models.VersionMetadata

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return meta, fmt.Errorf("failed to build metadata request: %w", err)
	}

	c.logger.WithFields(logger.Fields{"url": c.url}).Debug("Fetching version metadata")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return meta, fmt.Errorf("%w: %v", ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return meta, fmt.Errorf("%w: metadata endpoint returned status %d", ErrNetworkUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return meta, fmt.Errorf("%w: decoding metadata: %v", ErrNetworkUnavailable, err)
	}

	return meta, nil
}

// UpdateAvailable reports whether remote names a release different from the
// running version. The comparison is a raw string inequality after
// whitespace trimming, not a semantic-version ordering: any non-empty
// remote value that differs from the local version triggers an update,
// including values that would sort older.
func UpdateAvailable(local, remote string) bool {
	remote = strings.TrimSpace(remote)
	if remote == "" {
		return false
	}
	return remote != strings.TrimSpace(local)
}

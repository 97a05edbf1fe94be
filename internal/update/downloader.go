package update

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/gdt-tools/gdtpack/pkg/logger"
	"github.com/gdt-tools/gdtpack/pkg/models"
	"github.com/gdt-tools/gdtpack/pkg/tools"
)

const downloadBufferSize = 32 * 1024

// Downloader fetches the new main executable to the fixed staging path in
// the OS temp directory.
type Downloader struct {
	httpClient *http.Client
	logger     *logger.Logger
	progress   *rate.Limiter

	// dest overrides the staging path; empty selects the fixed temp path.
	dest string
}

// NewDownloader creates a payload downloader.
func NewDownloader(timeout time.Duration) *Downloader {
	return &Downloader{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.NewLogger("update-downloader"),
		progress:   rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// Download streams url to the staging path, truncating any previous partial
// download there. The returned path is only valid when the whole body
// arrived: a stream ending short of the declared Content-Length is an
// error, never a usable payload. On any failure the running binary is
// untouched and the cycle is over.
func (d *Downloader) Download(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("%w: release metadata carries no download URL", ErrDownloadFailed)
	}

	dest := d.dest
	if dest == "" {
		dest = models.PayloadPath()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build download request: %w", err)
	}

	d.logger.WithFields(logger.Fields{"url": url, "dest": dest}).Info("Downloading release payload")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: download returned status %d", ErrDownloadFailed, resp.StatusCode)
	}

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
	if err != nil {
		return "", fmt.Errorf("failed to open staging file: %w", err)
	}

	// -1 when the server sent no Content-Length; progress reporting is
	// disabled then but the download stays valid.
	total := resp.ContentLength

	written, copyErr := d.copyWithProgress(ctx, out, resp.Body, total)
	closeErr := out.Close()
	if copyErr != nil {
		return "", fmt.Errorf("%w: %v", ErrDownloadFailed, copyErr)
	}
	if closeErr != nil {
		return "", fmt.Errorf("%w: closing staging file: %v", ErrDownloadFailed, closeErr)
	}
	if total >= 0 && written != total {
		return "", fmt.Errorf("%w: received %d of %d bytes", ErrDownloadFailed, written, total)
	}

	d.logger.WithFields(logger.Fields{
		"dest": dest,
		"size": tools.FormatBytes(written),
	}).Info("Payload download complete")
	return dest, nil
}

// copyWithProgress is the chunked copy loop. Progress lines are throttled
// to one per second so large downloads do not flood the log.
func (d *Downloader) copyWithProgress(ctx context.Context, dst io.Writer, src io.Reader, total int64) (int64, error) {
	buf := make([]byte, downloadBufferSize)
	var written int64

	for {
		select {
		case <-ctx.Done():
			return written, ctx.Err()
		default:
		}

		nr, readErr := src.Read(buf)
		if nr > 0 {
			nw, writeErr := dst.Write(buf[:nr])
			if nw > 0 {
				written += int64(nw)
			}
			if writeErr != nil {
				return written, writeErr
			}
			if nr != nw {
				return written, io.ErrShortWrite
			}
			if total > 0 && d.progress.Allow() {
				d.logger.WithFields(logger.Fields{
					"received": tools.FormatBytes(written),
					"total":    tools.FormatBytes(total),
					"percent":  fmt.Sprintf("%.1f", float64(written)/float64(total)*100),
				}).Info("Download in progress")
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				return written, nil
			}
			return written, readErr
		}
	}
}

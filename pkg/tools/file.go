package tools

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gdt-tools/gdtpack/pkg/logger"
)

// CopyWithContext copies data from src to dst with context cancellation support
func CopyWithContext(ctx context.Context, dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, 32*1024)
	var written int64

	for {
		// Check for cancellation before each read
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
		}
		if readErr != nil {
			if readErr == io.EOF {
				return written, nil
			}
			return written, readErr
		}
	}
}

// MoveFile moves a file from src to dst, handling cross-device links
func MoveFile(log *logger.Logger, src, dst string) error {
	// First try rename (fast path)
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	log.Debug("Rename failed, falling back to copy+delete")

	// If rename fails, copy and delete
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dstFile.Close()

	// Copy content
	if _, err := io.Copy(dstFile, srcFile); err != nil {
		os.Remove(dst) // Clean up on failure
		return fmt.Errorf("failed to copy file: %w", err)
	}

	// Sync to ensure data is written
	if err := dstFile.Sync(); err != nil {
		os.Remove(dst) // Clean up on failure
		return fmt.Errorf("failed to sync file: %w", err)
	}

	// Remove source file
	if err := os.Remove(src); err != nil {
		log.WithError(err).Warning("Failed to remove source file after copy")
		// Don't return error, file was copied successfully
	}

	return nil
}

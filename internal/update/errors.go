package update

import "errors"

// Failure taxonomy of the update pipeline. Every failure degrades to "no
// change occurred": the running binary is left untouched and nothing
// retries automatically.
var (
	// ErrNetworkUnavailable covers metadata fetch failures; the cycle ends
	// as if no update were available.
	ErrNetworkUnavailable = errors.New("network unavailable")

	// ErrUpdaterMissing means no updater binary could be resolved; the
	// attempt is aborted before any payload download.
	ErrUpdaterMissing = errors.New("updater binary missing")

	// ErrDownloadFailed covers payload transport failures, bad statuses and
	// short bodies.
	ErrDownloadFailed = errors.New("download failed")

	// ErrHandoffFailed means the updater process could not be spawned; the
	// main process continues running the current version.
	ErrHandoffFailed = errors.New("updater handoff failed")
)

package models

// VersionMetadata is the release document published at the metadata URL.
// Fields missing from the remote document stay empty strings; consumers
// treat empty as "not offered", never as an error.
type VersionMetadata struct {
	Version            string `json:"version"`
	DownloadURL        string `json:"download_url"`
	UpdaterDownloadURL string `json:"updater_download_url"`
}

// ReplaceJob describes one binary replacement handed to the updater
// process. It crosses the process boundary as argv plus the parent pid in
// the environment; nothing else is shared.
type ReplaceJob struct {
	// CurrentExePath is the running executable to be replaced.
	CurrentExePath string
	// NewExePath is the downloaded payload that takes its place.
	NewExePath string
	// UpdaterPath is the helper binary that performs the swap.
	UpdaterPath string
}

// Args returns the positional arguments passed to the updater binary.
func (j ReplaceJob) Args() []string {
	return []string{j.CurrentExePath, j.NewExePath}
}

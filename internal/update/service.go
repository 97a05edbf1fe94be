package update

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/gdt-tools/gdtpack/internal/config"
	"github.com/gdt-tools/gdtpack/internal/ui"
	"github.com/gdt-tools/gdtpack/pkg/logger"
	"github.com/gdt-tools/gdtpack/pkg/models"
)

// Outcome classifies the result of one update cycle.
type Outcome string

const (
	// OutcomeUpToDate means the remote version equals the running one.
	OutcomeUpToDate Outcome = "up-to-date"
	// OutcomeMetadataUnavailable means the release document could not be
	// fetched; treated as "no update this cycle".
	OutcomeMetadataUnavailable Outcome = "metadata-unavailable"
	// OutcomeUpdaterUnavailable means the updater helper could not be
	// resolved; the attempt was aborted before any payload download.
	OutcomeUpdaterUnavailable Outcome = "updater-unavailable"
	// OutcomeDeclined means the user answered no to the consent prompt.
	OutcomeDeclined Outcome = "declined"
	// OutcomeDownloadFailed means the payload download failed; the running
	// binary is untouched.
	OutcomeDownloadFailed Outcome = "download-failed"
	// OutcomeHandoffFailed means the updater could not be spawned; the main
	// process keeps running the current version.
	OutcomeHandoffFailed Outcome = "handoff-failed"
	// OutcomeHandedOff means the updater was spawned; the main process must
	// now exit so the binary can be swapped.
	OutcomeHandedOff Outcome = "handed-off"
	// OutcomeSkipped means another cycle was already in flight.
	OutcomeSkipped Outcome = "skipped"
)

// Pipeline stage contracts, satisfied by Checker, ArtifactResolver,
// Downloader and Launcher.
type metadataFetcher interface {
	Fetch(ctx context.Context) (models.VersionMetadata, error)
}

type artifactResolver interface {
	Resolve(ctx context.Context, meta models.VersionMetadata) (string, error)
}

type payloadDownloader interface {
	Download(ctx context.Context, url string) (string, error)
}

type handoffLauncher interface {
	Launch(job models.ReplaceJob) error
}

// Service runs the main-process side of an update: check, consent,
// download, handoff. One synchronous cycle per call, never retried.
type Service struct {
	checker    metadataFetcher
	resolver   artifactResolver
	downloader payloadDownloader
	launcher   handoffLauncher
	prompter   ui.Prompter
	version    string
	exePath    func() (string, error)
	logger     *logger.Logger

	mu      sync.Mutex
	running bool
}

// NewService wires the real pipeline stages for the given configuration
// and running version.
func NewService(cfg *config.Config, version string, prompter ui.Prompter) *Service {
	timeout := cfg.Update.Timeout()
	return &Service{
		checker:    NewChecker(cfg.Update.MetadataURL, timeout),
		resolver:   NewArtifactResolver(timeout),
		downloader: NewDownloader(timeout),
		launcher:   NewLauncher(),
		prompter:   prompter,
		version:    version,
		exePath:    os.Executable,
		logger:     logger.NewLogger("update"),
	}
}

// RunOnce executes a single update cycle on the calling goroutine and
// reports how it ended. At most one cycle runs at a time; a concurrent call
// returns OutcomeSkipped. There is never more than one replace job in
// flight because a successful handoff ends the process.
func (s *Service) RunOnce(ctx context.Context) Outcome {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.Warn("Update cycle already in progress, skipping")
		return OutcomeSkipped
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	log := s.logger.WithFields(logger.Fields{"attempt_id": uuid.New().String()})

	log.WithField("current", s.version).Info("Checking for updates")
	meta, err := s.checker.Fetch(ctx)
	if err != nil {
		log.WithError(err).Warn("Version check failed, no update this cycle")
		return OutcomeMetadataUnavailable
	}

	// Pre-stage the helper while the metadata is at hand; a failure here
	// only matters once an update actually proceeds.
	updaterPath, resolveErr := s.resolver.Resolve(ctx, meta)

	remote := strings.TrimSpace(meta.Version)
	if !UpdateAvailable(s.version, remote) {
		log.Info("Already up to date")
		return OutcomeUpToDate
	}
	log.WithFields(logger.Fields{"remote": remote}).Info("Update available")

	if resolveErr != nil {
		log.WithError(resolveErr).Error("Updater binary unavailable, aborting before download")
		return OutcomeUpdaterUnavailable
	}

	if !s.prompter.Confirm(s.version, remote) {
		log.Info("Update declined")
		return OutcomeDeclined
	}

	payloadPath, err := s.downloader.Download(ctx, meta.DownloadURL)
	if err != nil {
		log.WithError(err).Error("Payload download failed, keeping current version")
		return OutcomeDownloadFailed
	}

	exe, err := s.exePath()
	if err != nil {
		log.WithError(err).Error("Cannot resolve current executable path")
		return OutcomeHandoffFailed
	}

	job := models.ReplaceJob{
		CurrentExePath: exe,
		NewExePath:     payloadPath,
		UpdaterPath:    updaterPath,
	}
	if err := s.launcher.Launch(job); err != nil {
		log.WithError(err).Error("Updater handoff failed, continuing unchanged")
		return OutcomeHandoffFailed
	}

	log.WithFields(logger.Fields{
		"current_exe": exe,
		"payload":     payloadPath,
	}).Info("Update handed off, exiting so the binary can be replaced")
	return OutcomeHandedOff
}

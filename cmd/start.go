package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gdt-tools/gdtpack/internal/initializer"
	"github.com/gdt-tools/gdtpack/internal/update"
	"github.com/gdt-tools/gdtpack/pkg/logger"
)

// SessionManager handles the lifecycle of an application session: the
// one-shot update scheduler, signal handling and the exit path after a
// successful updater handoff.
type SessionManager struct {
	logger    *logger.Logger
	scheduler *update.Scheduler
	ctx       context.Context
	cancel    context.CancelFunc
	sigChan   chan os.Signal

	mu        sync.Mutex
	handedOff bool
}

var StartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the application session",
	Long:  `Start the application session and arm the automatic update check.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logger.NewLogger("main")

		return NewSessionManager(logger).Run()
	},
}

// NewSessionManager creates a new session manager
func NewSessionManager(log *logger.Logger) *SessionManager {
	ctx, cancel := context.WithCancel(context.Background())
	return &SessionManager{
		logger:  log,
		ctx:     ctx,
		cancel:  cancel,
		sigChan: make(chan os.Signal, 1),
	}
}

// Run starts the application session
func (m *SessionManager) Run() error {
	if err := m.initialize(); err != nil {
		return fmt.Errorf("initialization failed: %v", err)
	}

	defer m.cleanup()

	// Start signal handler
	go m.handleSignals()

	if m.scheduler != nil {
		m.scheduler.Start()
	}

	return m.mainLoop()
}

// initialize sets up the session
func (m *SessionManager) initialize() error {
	if Cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}

	init := initializer.NewInitializer()
	if err := init.EnsureAppDirs(); err != nil {
		return err
	}
	init.CleanStaleArtifacts()

	if Cfg.Update.Enabled {
		service := update.NewService(Cfg, Version, choosePrompter(false))
		m.scheduler = update.NewScheduler(service, Cfg.Update.Delay(), m.onUpdateOutcome)
	} else {
		m.logger.Info("Automatic update check disabled by configuration")
	}

	signal.Notify(m.sigChan, syscall.SIGINT, syscall.SIGTERM)
	return nil
}

// cleanup performs cleanup operations
func (m *SessionManager) cleanup() {
	m.logger.Info("Cleaning up resources...")

	if m.scheduler != nil {
		m.scheduler.Stop()
	}

	signal.Stop(m.sigChan)
	close(m.sigChan)
	m.cancel()

	m.logger.Info("Cleanup completed")
}

// handleSignals handles OS signals
func (m *SessionManager) handleSignals() {
	for {
		select {
		case sig, ok := <-m.sigChan:
			if !ok {
				// Channel closed, exit gracefully
				return
			}
			m.logger.Warnf("Received signal %s, initiating shutdown...", sig)
			m.cancel()
			return
		case <-m.ctx.Done():
			return
		}
	}
}

// onUpdateOutcome ends the session when the scheduled cycle handed off to
// the updater process; every other outcome leaves the session running.
func (m *SessionManager) onUpdateOutcome(outcome update.Outcome) {
	if outcome != update.OutcomeHandedOff {
		return
	}

	m.mu.Lock()
	m.handedOff = true
	m.mu.Unlock()
	m.cancel()
}

// mainLoop blocks until the session ends, either by signal or by a
// successful handoff. Both paths exit 0: after a handoff the updater is
// waiting for this very process to disappear.
func (m *SessionManager) mainLoop() error {
	m.logger.WithFields(logger.Fields{"version": Version}).Info("gdtpack session started")

	<-m.ctx.Done()

	m.mu.Lock()
	handedOff := m.handedOff
	m.mu.Unlock()

	if handedOff {
		m.logger.Info("Exiting so the updater can replace the binary")
	}
	return nil
}

func init() {
	RootCmd.AddCommand(StartCmd)
}

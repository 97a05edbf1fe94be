package update

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gdt-tools/gdtpack/pkg/models"
)

func TestSchedulerRunsAfterDelay(t *testing.T) {
	checker := &fakeChecker{meta: models.VersionMetadata{Version: "1.2.2"}}
	svc := newTestService(checker, &fakeResolver{path: "/tmp/updater"}, &fakeDownloader{}, &fakeLauncher{}, true)

	outcomes := make(chan Outcome, 1)
	s := NewScheduler(svc, 10*time.Millisecond, func(o Outcome) { outcomes <- o })
	s.Start()
	defer s.Stop()

	select {
	case got := <-outcomes:
		assert.Equal(t, OutcomeUpToDate, got)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduled update cycle never fired")
	}
	assert.Equal(t, 1, checker.calls)
}

func TestSchedulerStopCancelsPendingTrigger(t *testing.T) {
	checker := &fakeChecker{meta: models.VersionMetadata{Version: "1.2.2"}}
	svc := newTestService(checker, &fakeResolver{}, &fakeDownloader{}, &fakeLauncher{}, true)

	s := NewScheduler(svc, time.Hour, nil)
	s.Start()
	s.Stop()

	assert.Zero(t, checker.calls)
}

func TestSchedulerStopWithoutStart(t *testing.T) {
	svc := newTestService(&fakeChecker{}, &fakeResolver{}, &fakeDownloader{}, &fakeLauncher{}, true)
	s := NewScheduler(svc, time.Second, nil)
	s.Stop()
}

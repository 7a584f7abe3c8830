package lock_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/eykd/manifestlint-go/internal/lock"
)

// mockFlocker is a test double for the Flocker interface.
type mockFlocker struct {
	tryLockResult bool
	tryLockErr    error
	unlockErr     error
	tryLockCalled bool
	unlockCalled  bool
}

func (m *mockFlocker) TryLock() (bool, error) {
	m.tryLockCalled = true
	return m.tryLockResult, m.tryLockErr
}

func (m *mockFlocker) Unlock() error {
	m.unlockCalled = true
	return m.unlockErr
}

func TestLock_TryLock(t *testing.T) {
	errPermDenied := errors.New("permission denied")

	tests := []struct {
		name          string
		tryLockResult bool
		tryLockErr    error
		wantErr       error
	}{
		{
			name:          "succeeds when lock is available",
			tryLockResult: true,
		},
		{
			name:    "returns ErrAlreadyLocked when lock is held",
			wantErr: lock.ErrAlreadyLocked,
		},
		{
			name:       "wraps underlying flock error",
			tryLockErr: errPermDenied,
			wantErr:    errPermDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockFlocker{
				tryLockResult: tt.tryLockResult,
				tryLockErr:    tt.tryLockErr,
			}
			l := lock.New(m)

			err := l.TryLock(context.Background())

			if !m.tryLockCalled {
				t.Error("expected TryLock to be called on flocker")
			}
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLock_TryLock_AlreadyLocked_HasClearMessage(t *testing.T) {
	l := lock.New(&mockFlocker{})

	err := l.TryLock(context.Background())

	want := "another mlint process is writing this report"
	if err == nil || err.Error() != want {
		t.Errorf("error = %v, want %q", err, want)
	}
}

func TestLock_TryLock_RespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := &mockFlocker{tryLockResult: true}
	err := lock.New(m).TryLock(ctx)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if m.tryLockCalled {
		t.Error("flocker was asked to lock after cancellation")
	}
}

func TestLock_Unlock_PropagatesError(t *testing.T) {
	unlockErr := errors.New("unlock failed")
	m := &mockFlocker{unlockErr: unlockErr}

	err := lock.New(m).Unlock()

	if !m.unlockCalled {
		t.Error("expected Unlock to be called on flocker")
	}
	if !errors.Is(err, unlockErr) {
		t.Errorf("error = %v, want wrapped %v", err, unlockErr)
	}
}

func TestLock_With(t *testing.T) {
	errWork := errors.New("write failed")
	errUnlock := errors.New("unlock failed")

	tests := []struct {
		name      string
		locked    bool
		workErr   error
		unlockErr error
		wantErr   error
		wantRun   bool
	}{
		{name: "runs and releases", locked: true, wantRun: true},
		{name: "returns work error", locked: true, workErr: errWork, wantErr: errWork, wantRun: true},
		{name: "reports unlock failure after success", locked: true, unlockErr: errUnlock, wantErr: errUnlock, wantRun: true},
		{name: "work error wins over unlock failure", locked: true, workErr: errWork, unlockErr: errUnlock, wantErr: errWork, wantRun: true},
		{name: "skips work when held", locked: false, wantErr: lock.ErrAlreadyLocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockFlocker{tryLockResult: tt.locked, unlockErr: tt.unlockErr}
			ran := false

			err := lock.New(m).With(context.Background(), func() error {
				ran = true
				return tt.workErr
			})

			if ran != tt.wantRun {
				t.Errorf("fn ran = %v, want %v", ran, tt.wantRun)
			}
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.locked && !m.unlockCalled {
				t.Error("lock was not released")
			}
		})
	}
}

func TestForReport_ContendsOnSamePath(t *testing.T) {
	report := filepath.Join(t.TempDir(), "report.json")

	first := lock.ForReport(report)
	if err := first.TryLock(context.Background()); err != nil {
		t.Fatalf("first TryLock: %v", err)
	}
	defer first.Unlock()

	second := lock.ForReport(report)
	if err := second.TryLock(context.Background()); !errors.Is(err, lock.ErrAlreadyLocked) {
		t.Errorf("second TryLock error = %v, want ErrAlreadyLocked", err)
	}
}

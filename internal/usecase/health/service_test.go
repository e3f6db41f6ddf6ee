package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockStorePinger struct {
	err error
}

func (m *mockStorePinger) Ping(_ context.Context) error { return m.err }

type mockReadiness struct {
	ready bool
}

func (m *mockReadiness) Ready() bool { return m.ready }

// --- Tests ---

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		ready      bool
		store      StorePinger
		wantStatus Status
		wantChecks map[string]CheckResult
	}{
		{
			name:       "all healthy",
			ready:      true,
			store:      &mockStorePinger{},
			wantStatus: Healthy,
			wantChecks: map[string]CheckResult{CheckCatalog: CheckOK, CheckEncoderState: CheckOK},
		},
		{
			name:       "store down",
			ready:      true,
			store:      &mockStorePinger{err: errors.New("conn refused")},
			wantStatus: Degraded,
			wantChecks: map[string]CheckResult{CheckCatalog: CheckOK, CheckEncoderState: CheckError},
		},
		{
			name:       "catalog not published",
			ready:      false,
			store:      &mockStorePinger{},
			wantStatus: Unhealthy,
			wantChecks: map[string]CheckResult{CheckCatalog: CheckError, CheckEncoderState: CheckOK},
		},
		{
			name:       "both fail",
			ready:      false,
			store:      &mockStorePinger{err: errors.New("down")},
			wantStatus: Unhealthy,
			wantChecks: map[string]CheckResult{CheckCatalog: CheckError, CheckEncoderState: CheckError},
		},
		{
			name:       "no store",
			ready:      true,
			wantStatus: Healthy,
			wantChecks: map[string]CheckResult{CheckCatalog: CheckOK},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := New(&mockReadiness{ready: tt.ready}, tt.store)
			r := svc.Check(context.Background())

			if r.Status != tt.wantStatus {
				t.Errorf("expected %q, got %q", tt.wantStatus, r.Status)
			}
			if len(r.Checks) != len(tt.wantChecks) {
				t.Errorf("expected %d checks, got %v", len(tt.wantChecks), r.Checks)
			}
			for k, want := range tt.wantChecks {
				if r.Checks[k] != want {
					t.Errorf("check %s: expected %q, got %q", k, want, r.Checks[k])
				}
			}
		})
	}
}

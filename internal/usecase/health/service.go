package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the store is down while recommendations are still served.
	Degraded Status = "degraded"
	// Unhealthy indicates the catalog index is not published.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Check names.
const (
	CheckCatalog      = "catalog"
	CheckEncoderState = "encoder_state"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	catalog ReadinessChecker
	store   StorePinger
}

// New creates a Service. store can be nil when no encoder state store is configured.
func New(catalog ReadinessChecker, store StorePinger) *Service {
	return &Service{catalog: catalog, store: store}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 2)

	if s.catalog.Ready() {
		checks[CheckCatalog] = CheckOK
	} else {
		checks[CheckCatalog] = CheckError
	}

	if s.store != nil {
		if err := s.store.Ping(ctx); err != nil {
			checks[CheckEncoderState] = CheckError
		} else {
			checks[CheckEncoderState] = CheckOK
		}
	}

	status := Healthy
	switch {
	case checks[CheckCatalog] == CheckError:
		status = Unhealthy
	case checks[CheckEncoderState] == CheckError:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}

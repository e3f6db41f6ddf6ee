package health

import "context"

// StorePinger checks encoder state store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// ReadinessChecker reports whether the catalog snapshot is published.
type ReadinessChecker interface {
	Ready() bool
}

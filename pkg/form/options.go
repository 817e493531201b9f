package form

import (
	"github.com/hashicorp/go-hclog"

	"github.com/goliatone/go-formstate/pkg/model"
)

// SubmitFunc receives the form data once full validation passes. Its return
// is not observed.
type SubmitFunc func(model.FormData)

// Listener is notified with every published snapshot.
type Listener func(State)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger routes controller diagnostics to logger.
func WithLogger(logger hclog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithValues prefills the form. Values for unknown fields are ignored;
// parents with a prefilled value cascade to their dependents, sections grow
// to hold every prefilled row and values left on disabled fields are
// dropped. More rows than a section's maxSections make New fail.
func WithValues(values model.FormData) Option {
	return func(c *Controller) {
		c.initial = values
	}
}

// WithListener registers a callback invoked after each state change,
// outside the controller lock. Snapshots arrive in publish order; with
// concurrent handlers a snapshot may be delivered on another handler's
// goroutine.
func WithListener(listener Listener) Option {
	return func(c *Controller) {
		if listener != nil {
			c.listeners = append(c.listeners, listener)
		}
	}
}

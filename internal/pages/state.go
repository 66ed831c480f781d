package pages

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/prtracker/internal/router"
	"github.com/2beens/prtracker/internal/telemetry/metrics"
)

type State int

const (
	StateIdle State = iota
	StateAwaitingAuthCheck
	StateUnauthenticated
	StateFetching
	StateRendered
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingAuthCheck:
		return "awaiting-auth-check"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateFetching:
		return "fetching"
	case StateRendered:
		return "rendered"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal states end a page load; only a new navigation or a resubmitted form leaves them.
func (s State) Terminal() bool {
	return s == StateUnauthenticated || s == StateRendered || s == StateFailed
}

type Controller interface {
	ID() router.ControllerID
	Start(ctx context.Context)
	State() State
}

// machine holds the state shared by all controllers.
// Controllers are driven from a single goroutine, so no locking is done here.
type machine struct {
	id             router.ControllerID
	state          State
	metricsManager *metrics.Manager
}

func newMachine(id router.ControllerID, metricsManager *metrics.Manager) machine {
	return machine{
		id:             id,
		state:          StateIdle,
		metricsManager: metricsManager,
	}
}

func (m *machine) ID() router.ControllerID {
	return m.id
}

func (m *machine) State() State {
	return m.state
}

func (m *machine) set(state State) {
	log.Debugf("[%s] %s -> %s", m.id, m.state, state)
	m.state = state
	if state.Terminal() && m.metricsManager != nil {
		m.metricsManager.CounterControllerOutcomes.WithLabelValues(string(m.id), state.String()).Inc()
	}
}

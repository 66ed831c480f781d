package pages_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/2beens/prtracker/internal/pages"
	"github.com/2beens/prtracker/internal/router"
)

func controllerIDs(controllers []pages.Controller) []router.ControllerID {
	var ids []router.ControllerID
	for _, c := range controllers {
		ids = append(ids, c.ID())
	}
	return ids
}

func TestApp_Load(t *testing.T) {
	env := newTestEnv(t)
	env.logIn(t)
	env.backend.SetPRTypes(map[string]string{"pr": "bench", "exercise": "press"})
	env.backend.SetActivities("run")
	app := pages.NewApp(env.store, env.client, env.metricsManager, "")
	nav := NewMockNavigator(gomock.NewController(t))

	doc := indexDocument()
	controllers := app.Load(context.Background(), "/personal-index", doc, nav)
	require.Equal(t, []router.ControllerID{router.IndexController}, controllerIDs(controllers))
	assert.Equal(t, pages.StateRendered, controllers[0].State())
	assert.Len(t, doc.options["prSelect"], 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metricsManager.CounterControllerOutcomes.WithLabelValues("index", "rendered")))

	controllers = app.Load(context.Background(), "/somewhere-else", newFakeDocument(), nav)
	assert.Empty(t, controllers)
}

func TestApp_LoadSeveralControllers(t *testing.T) {
	env := newTestEnv(t)
	app := pages.NewApp(env.store, env.client, env.metricsManager, "")
	nav := NewMockNavigator(gomock.NewController(t))

	// a detail page with an embedded login form, without a credential
	doc := newFakeDocument("pr-table").withForm("loginForm", map[string]string{})
	controllers := app.Load(context.Background(), "/personal-record/bench/press", doc, nav)

	require.Equal(t, []router.ControllerID{router.LoginController, router.DetailController}, controllerIDs(controllers))
	assert.Equal(t, pages.StateIdle, controllers[0].State())
	assert.Equal(t, pages.StateUnauthenticated, controllers[1].State())
	assert.Contains(t, doc.submitHandlers, "loginForm")
	assert.Empty(t, env.backend.Requests())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "awaiting-auth-check", pages.StateAwaitingAuthCheck.String())
	assert.True(t, pages.StateFailed.Terminal())
	assert.False(t, pages.StateFetching.Terminal())
	assert.Equal(t, "unknown", pages.State(42).String())
}

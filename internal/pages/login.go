package pages

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/prtracker/internal/credentials"
	"github.com/2beens/prtracker/internal/personalrecords"
	"github.com/2beens/prtracker/internal/render"
	"github.com/2beens/prtracker/internal/router"
	"github.com/2beens/prtracker/internal/telemetry/metrics"
)

// Login is the only writer of the credential store.
type Login struct {
	machine
	view        FormView
	store       credentials.Store
	fetcher     Fetcher
	nav         Navigator
	landingPath string
}

func NewLogin(
	view FormView,
	store credentials.Store,
	fetcher Fetcher,
	nav Navigator,
	metricsManager *metrics.Manager,
	landingPath string,
) *Login {
	if landingPath == "" {
		landingPath = router.IndexPage
	}
	return &Login{
		machine:     newMachine(router.LoginController, metricsManager),
		view:        view,
		store:       store,
		fetcher:     fetcher,
		nav:         nav,
		landingPath: landingPath,
	}
}

func (c *Login) Start(_ context.Context) {
	if !c.view.Has(router.LoginFormElement) {
		log.Debugf("[%s] no %s on the page", c.id, router.LoginFormElement)
		return
	}
	c.view.OnSubmit(router.LoginFormElement, c.submit)
}

func (c *Login) submit(ctx context.Context) {
	values := c.view.FormValues(router.LoginFormElement)
	req := personalrecords.LoginRequest{
		Email:    values["email"],
		Password: values["password"],
	}

	c.set(StateFetching)
	var resp personalrecords.LoginResponse
	if err := c.fetcher.Post(ctx, router.LoginAPI, req, &resp); err != nil {
		c.view.SetText(router.MessageElement, formFailureMessage(c.id, err))
		c.set(StateFailed)
		return
	}

	if err := c.store.Set(ctx, resp.Token); err != nil {
		log.Errorf("[%s] store credential: %s", c.id, err)
		c.view.SetText(router.MessageElement, render.NetworkErrorText)
		c.set(StateFailed)
		return
	}

	c.view.SetText(router.MessageElement, resp.Message)
	c.set(StateRendered)
	c.nav.Navigate(c.landingPath)
}

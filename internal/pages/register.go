package pages

import (
	"context"

	"github.com/2beens/prtracker/internal/personalrecords"
	"github.com/2beens/prtracker/internal/router"
	"github.com/2beens/prtracker/internal/telemetry/metrics"
)

type Register struct {
	machine
	view    FormView
	fetcher Fetcher
	nav     Navigator
}

func NewRegister(view FormView, fetcher Fetcher, nav Navigator, metricsManager *metrics.Manager) *Register {
	return &Register{
		machine: newMachine(router.RegisterController, metricsManager),
		view:    view,
		fetcher: fetcher,
		nav:     nav,
	}
}

func (c *Register) Start(_ context.Context) {
	if c.view.Has(router.RegisterFormElement) {
		c.view.OnSubmit(router.RegisterFormElement, c.submit)
	}
}

func (c *Register) submit(ctx context.Context) {
	values := c.view.FormValues(router.RegisterFormElement)
	req := personalrecords.RegisterRequest{
		Name:     values["name"],
		Email:    values["email"],
		Password: values["password"],
	}

	c.set(StateFetching)
	var resp personalrecords.MessageResponse
	if err := c.fetcher.Post(ctx, router.RegisterAPI, req, &resp); err != nil {
		c.view.SetText(router.MessageElement, formFailureMessage(c.id, err))
		c.set(StateFailed)
		return
	}

	c.view.SetText(router.MessageElement, resp.Message)
	c.set(StateRendered)
	c.nav.Navigate(router.LoginPage)
}

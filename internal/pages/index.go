package pages

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/prtracker/internal/credentials"
	"github.com/2beens/prtracker/internal/personalrecords"
	"github.com/2beens/prtracker/internal/render"
	"github.com/2beens/prtracker/internal/router"
	"github.com/2beens/prtracker/internal/telemetry/metrics"
)

// Index is the selection page: one select for PR types, one for activities.
type Index struct {
	machine
	view    IndexView
	store   credentials.Store
	fetcher Fetcher
	nav     Navigator
}

type optionsResult struct {
	selectID string
	options  []render.Option
	err      error
}

func NewIndex(
	view IndexView,
	store credentials.Store,
	fetcher Fetcher,
	nav Navigator,
	metricsManager *metrics.Manager,
) *Index {
	return &Index{
		machine: newMachine(router.IndexController, metricsManager),
		view:    view,
		store:   store,
		fetcher: fetcher,
		nav:     nav,
	}
}

// Start loads both lists concurrently and returns once both requests are done.
// The view is only touched from the calling goroutine.
func (c *Index) Start(ctx context.Context) {
	c.set(StateAwaitingAuthCheck)
	if _, ok := c.store.Get(ctx); !ok {
		c.view.ReplaceBody(render.AuthPrompt())
		c.set(StateUnauthenticated)
		return
	}

	c.view.OnChange(router.PRSelectElement, c.selectPRType)
	c.view.OnChange(router.ActivitySelectElement, c.selectActivity)

	c.set(StateFetching)
	loaders := []func(ctx context.Context) optionsResult{
		c.loadPRTypes,
		c.loadActivities,
	}

	results := make(chan optionsResult, len(loaders))
	var wg sync.WaitGroup
	for _, load := range loaders {
		wg.Add(1)
		go func(load func(ctx context.Context) optionsResult) {
			defer wg.Done()
			results <- load(ctx)
		}(load)
	}

	failed := 0
	for range loaders {
		res := <-results
		if res.err != nil {
			log.Errorf("[%s] load %s: %s", c.id, res.selectID, res.err)
			failed++
			continue
		}
		for _, option := range res.options {
			c.view.AppendOption(res.selectID, option)
		}
	}
	wg.Wait()

	if failed == len(loaders) {
		c.view.ReplaceBody(render.LoadError())
		c.set(StateFailed)
		return
	}
	c.set(StateRendered)
}

func (c *Index) loadPRTypes(ctx context.Context) optionsResult {
	var prTypes []personalrecords.PRTypeOption
	err := c.fetcher.Get(ctx, router.PRTypesAPI, &prTypes)
	return optionsResult{
		selectID: router.PRSelectElement,
		options:  render.PRTypeOptions(prTypes),
		err:      err,
	}
}

func (c *Index) loadActivities(ctx context.Context) optionsResult {
	var activities []personalrecords.ActivityOption
	err := c.fetcher.Get(ctx, router.ActivitiesAPI, &activities)
	return optionsResult{
		selectID: router.ActivitySelectElement,
		options:  render.ActivityOptions(activities),
		err:      err,
	}
}

func (c *Index) selectPRType(_ context.Context, value string) {
	if value == "" {
		return
	}
	prType, err := personalrecords.DecodePRTypeValue(value)
	if err != nil {
		log.Errorf("[%s] selected pr type %q: %s", c.id, value, err)
		return
	}
	c.nav.Navigate(router.DetailPath(prType.PR, prType.Exercise))
}

func (c *Index) selectActivity(_ context.Context, value string) {
	if value == "" {
		return
	}
	c.nav.Navigate(router.ActivityPath(value))
}

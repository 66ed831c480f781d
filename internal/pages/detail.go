package pages

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/prtracker/internal/credentials"
	"github.com/2beens/prtracker/internal/fetch"
	"github.com/2beens/prtracker/internal/personalrecords"
	"github.com/2beens/prtracker/internal/render"
	"github.com/2beens/prtracker/internal/router"
	"github.com/2beens/prtracker/internal/telemetry/metrics"
)

// Detail shows the history of one PR type: a table and a progress chart.
type Detail struct {
	machine
	view     DetailView
	store    credentials.Store
	fetcher  Fetcher
	pathname string
}

func NewDetail(
	view DetailView,
	store credentials.Store,
	fetcher Fetcher,
	metricsManager *metrics.Manager,
	pathname string,
) *Detail {
	return &Detail{
		machine:  newMachine(router.DetailController, metricsManager),
		view:     view,
		store:    store,
		fetcher:  fetcher,
		pathname: pathname,
	}
}

// recordKey prefers the page data attributes over the URL segments.
func (c *Detail) recordKey() (pr, exercise string) {
	pr, exercise, _ = router.DetailKey(c.pathname)
	if v, ok := c.view.Dataset(router.PRTypeAttribute); ok && v != "" {
		pr = v
	}
	if v, ok := c.view.Dataset(router.ExerciseAttribute); ok && v != "" {
		exercise = v
	}
	return pr, exercise
}

func (c *Detail) Start(ctx context.Context) {
	c.set(StateAwaitingAuthCheck)
	if _, ok := c.store.Get(ctx); !ok {
		c.view.ReplaceBody(render.AuthPrompt())
		c.set(StateUnauthenticated)
		return
	}

	pr, exercise := c.recordKey()
	if pr == "" {
		log.Errorf("[%s] no pr type in %q", c.id, c.pathname)
		c.view.ReplaceBody(render.LoadError())
		c.set(StateFailed)
		return
	}

	c.set(StateFetching)
	var entries []personalrecords.Entry
	if err := c.fetcher.Get(ctx, router.RecordsAPIPath(pr, exercise), &entries); err != nil {
		if httpErr, ok := fetch.AsHttpError(err); ok {
			log.Warnf("[%s] get records %s/%s: %s", c.id, pr, exercise, httpErr)
			c.view.ReplaceBody(render.Message(httpErr.Message))
		} else {
			log.Errorf("[%s] get records %s/%s: %s", c.id, pr, exercise, err)
			c.view.ReplaceBody(render.LoadError())
		}
		c.set(StateFailed)
		return
	}

	// only the per exercise history carries a time column
	withTime := exercise != ""
	for _, row := range render.EntryRows(entries, withTime) {
		c.view.AppendRow(router.RecordsTableElement, row)
	}
	c.view.RenderChart(router.ChartElement, render.ProgressChart(personalrecords.NewSeries(entries)))
	c.set(StateRendered)
}

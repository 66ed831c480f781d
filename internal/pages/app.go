package pages

import (
	"context"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/prtracker/internal/credentials"
	"github.com/2beens/prtracker/internal/router"
	"github.com/2beens/prtracker/internal/telemetry/metrics"
	"github.com/2beens/prtracker/internal/telemetry/tracing"
)

// App wires controllers to a loaded page.
type App struct {
	store          credentials.Store
	fetcher        Fetcher
	metricsManager *metrics.Manager
	indexPath      string
}

func NewApp(store credentials.Store, fetcher Fetcher, metricsManager *metrics.Manager, indexPath string) *App {
	return &App{
		store:          store,
		fetcher:        fetcher,
		metricsManager: metricsManager,
		indexPath:      indexPath,
	}
}

// Load starts, in router order, every controller that applies to the page.
func (a *App) Load(ctx context.Context, pathname string, doc Document, nav Navigator) []Controller {
	ctx, span := tracing.GlobalTracer.Start(ctx, "pages.load")
	defer span.End()
	span.SetAttributes(attribute.String("page.path", pathname))

	ids := router.Route(pathname, doc.Has)
	log.Debugf("page %s: controllers %v", pathname, ids)

	controllers := make([]Controller, 0, len(ids))
	for _, id := range ids {
		c := a.controller(id, pathname, doc, nav)
		if c == nil {
			log.Errorf("page %s: unknown controller %s", pathname, id)
			continue
		}
		c.Start(ctx)
		controllers = append(controllers, c)
	}
	return controllers
}

func (a *App) controller(id router.ControllerID, pathname string, doc Document, nav Navigator) Controller {
	switch id {
	case router.LoginController:
		return NewLogin(doc, a.store, a.fetcher, nav, a.metricsManager, a.indexPath)
	case router.RegisterController:
		return NewRegister(doc, a.fetcher, nav, a.metricsManager)
	case router.RecordFormController:
		return NewRecordForm(doc, a.store, a.fetcher, nav, a.metricsManager)
	case router.DetailController:
		return NewDetail(doc, a.store, a.fetcher, a.metricsManager, pathname)
	case router.IndexController:
		return NewIndex(doc, a.store, a.fetcher, nav, a.metricsManager)
	default:
		return nil
	}
}

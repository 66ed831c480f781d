package terminal

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/prtracker/internal/pages"
	"github.com/2beens/prtracker/internal/render"
	"github.com/2beens/prtracker/internal/router"
	"github.com/2beens/prtracker/internal/telemetry/metrics"
)

const DefaultMaxHops = 8

var ErrTooManyNavigations = errors.New("too many navigations")

var textPolicy = bluemonday.StrictPolicy()

// navigation records the last Navigate call of a page.
type navigation struct {
	target string
}

func (n *navigation) Navigate(path string) {
	n.target = path
}

type Browser struct {
	app            *pages.App
	prompter       Prompter
	out            io.Writer
	chartsDir      string
	metricsManager *metrics.Manager
	MaxHops        int
}

func NewBrowser(
	app *pages.App,
	prompter Prompter,
	out io.Writer,
	chartsDir string,
	metricsManager *metrics.Manager,
) *Browser {
	return &Browser{
		app:            app,
		prompter:       prompter,
		out:            out,
		chartsDir:      chartsDir,
		metricsManager: metricsManager,
		MaxHops:        DefaultMaxHops,
	}
}

// Open loads path and follows navigations until a page no longer navigates.
// It returns the path of that last page.
func (b *Browser) Open(ctx context.Context, path string) (string, error) {
	for hops := 0; ; hops++ {
		next, err := b.visit(ctx, path)
		if err != nil {
			return path, err
		}
		if next == "" {
			return path, nil
		}
		if hops == b.MaxHops {
			return path, fmt.Errorf("%w: %s -> %s", ErrTooManyNavigations, path, next)
		}

		log.Debugf("navigate %s -> %s", path, next)
		if b.metricsManager != nil {
			b.metricsManager.CounterNavigations.Inc()
		}
		path = next
	}
}

// visit loads one page: selects first, then forms, one interaction each.
func (b *Browser) visit(ctx context.Context, path string) (string, error) {
	doc := NewDocument(path)
	nav := &navigation{}

	b.printf("%s\n", styleHeader.Render(pageHeading(doc)))
	controllers := b.app.Load(ctx, path, doc, nav)
	if err := b.flush(doc); err != nil {
		return "", err
	}
	if nav.target != "" {
		return nav.target, nil
	}

	for _, selectID := range doc.page.selects {
		handler, bound := doc.changeHandlers[selectID]
		options := doc.Options(selectID)
		if !bound || !doc.Has(selectID) || len(options) == 0 {
			continue
		}
		value, err := b.prompter.Choose(selectID, options)
		if err != nil {
			return "", err
		}
		if value == "" {
			continue
		}
		handler(ctx, value)
		if err := b.flush(doc); err != nil {
			return "", err
		}
		if nav.target != "" {
			return nav.target, nil
		}
	}

	for _, f := range doc.page.forms {
		handler, bound := doc.submitHandlers[f.id]
		if !bound || !doc.Has(f.id) {
			continue
		}
		for {
			values, err := b.prompter.Fill(f.id, f.fields)
			if err != nil {
				return "", err
			}
			doc.fill(f.id, values)
			handler(ctx)
			if err := b.flush(doc); err != nil {
				return "", err
			}
			if nav.target != "" {
				return nav.target, nil
			}
			if controllerState(controllers, f.controller) != pages.StateFailed || !b.prompter.Retry(f.id) {
				break
			}
		}
	}

	return "", nil
}

func controllerState(controllers []pages.Controller, id router.ControllerID) pages.State {
	for _, c := range controllers {
		if c.ID() == id {
			return c.State()
		}
	}
	return pages.StateIdle
}

// flush prints what changed on the page since the last flush.
func (b *Browser) flush(doc *Document) error {
	if doc.bodyPending {
		doc.bodyPending = false
		b.printf("%s\n", styleError.Render(plainText(doc.body)))
	}

	for _, id := range doc.pendingTexts {
		b.printf("%s\n", styleOK.Render(doc.texts[id]))
	}
	doc.pendingTexts = nil

	for _, tableID := range []string{router.RecordsTableElement} {
		rows := doc.rows[tableID]
		if len(rows) <= doc.flushedRows[tableID] {
			continue
		}
		cells := make([][]string, 0, len(rows))
		for _, row := range rows {
			cells = append(cells, row.Cells)
		}
		withTime := len(rows[0].Cells) == len(render.EntryHeader(true))
		b.printf("%s", renderTable(render.EntryHeader(withTime), cells))
		doc.flushedRows[tableID] = len(rows)
	}

	pending := doc.pendingChart
	doc.pendingChart = nil
	for _, canvasID := range pending {
		chartPath, err := WriteChartPNG(b.chartsDir, chartName(doc.path), doc.charts[canvasID])
		if err != nil {
			return fmt.Errorf("write chart %s: %w", canvasID, err)
		}
		if chartPath == "" {
			b.printf("%s\n", styleDim.Render("(aucune donnée)"))
			continue
		}
		b.printf("%s %s\n", styleDim.Render("graphique :"), chartPath)
	}

	return nil
}

func (b *Browser) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(b.out, format, args...); err != nil {
		log.Errorf("write output: %s", err)
	}
}

func pageHeading(doc *Document) string {
	if doc.page.title == "" {
		return doc.path
	}
	return fmt.Sprintf("%s (%s)", doc.page.title, doc.path)
}

// plainText strips markup for terminal output.
func plainText(markup string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(markup)))
}

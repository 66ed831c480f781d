package pages

import (
	"context"

	"github.com/2beens/prtracker/internal/render"
)

type SubmitHandler func(ctx context.Context)

type ChangeHandler func(ctx context.Context, value string)

type Elements interface {
	Has(id string) bool
}

type FormView interface {
	Elements
	FormValues(formID string) map[string]string
	SetText(id, text string)
	OnSubmit(formID string, handler SubmitHandler)
}

type BodyView interface {
	ReplaceBody(markup string)
}

type SelectView interface {
	Elements
	AppendOption(selectID string, option render.Option)
	OnChange(selectID string, handler ChangeHandler)
}

type RecordFormView interface {
	FormView
	SelectView
	BodyView
}

type IndexView interface {
	SelectView
	BodyView
}

type DetailView interface {
	BodyView
	// Dataset reads a data-* attribute of the page.
	Dataset(key string) (string, bool)
	AppendRow(tableID string, row render.Row)
	RenderChart(canvasID string, chart render.Chart)
}

// Document is everything a page offers; hosts implement it once.
type Document interface {
	FormView
	SelectView
	BodyView
	DetailView
}

// Fetcher is satisfied by *fetch.Client.
type Fetcher interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
}

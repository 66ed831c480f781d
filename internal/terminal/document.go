package terminal

import (
	"github.com/2beens/prtracker/internal/pages"
	"github.com/2beens/prtracker/internal/render"
)

var _ pages.Document = (*Document)(nil)

// Document is the in-memory page state controllers mutate.
// The browser reads it back to print what changed.
type Document struct {
	path string
	page page

	values  map[string]map[string]string
	dataset map[string]string

	texts        map[string]string
	pendingTexts []string
	options      map[string][]render.Option
	rows         map[string][]render.Row
	flushedRows  map[string]int
	charts       map[string]render.Chart
	pendingChart []string

	body         string
	bodyReplaced bool
	bodyPending  bool

	submitHandlers map[string]pages.SubmitHandler
	changeHandlers map[string]pages.ChangeHandler
}

func NewDocument(path string) *Document {
	return &Document{
		path:           path,
		page:           lookupPage(path),
		values:         map[string]map[string]string{},
		dataset:        map[string]string{},
		texts:          map[string]string{},
		options:        map[string][]render.Option{},
		rows:           map[string][]render.Row{},
		flushedRows:    map[string]int{},
		charts:         map[string]render.Chart{},
		submitHandlers: map[string]pages.SubmitHandler{},
		changeHandlers: map[string]pages.ChangeHandler{},
	}
}

func (d *Document) Path() string {
	return d.path
}

// SetDataset sets a data-* attribute of the page.
func (d *Document) SetDataset(key, value string) {
	d.dataset[key] = value
}

// fill stores the values a form is submitted with.
func (d *Document) fill(formID string, values map[string]string) {
	d.values[formID] = values
}

func (d *Document) Has(id string) bool {
	if d.bodyReplaced {
		return false
	}
	return d.page.has(id)
}

func (d *Document) FormValues(formID string) map[string]string {
	values := make(map[string]string, len(d.values[formID]))
	for k, v := range d.values[formID] {
		values[k] = v
	}
	return values
}

func (d *Document) SetText(id, text string) {
	d.texts[id] = text
	d.pendingTexts = append(d.pendingTexts, id)
}

func (d *Document) Text(id string) string {
	return d.texts[id]
}

func (d *Document) OnSubmit(formID string, handler pages.SubmitHandler) {
	d.submitHandlers[formID] = handler
}

func (d *Document) ReplaceBody(markup string) {
	d.body = markup
	d.bodyReplaced = true
	d.bodyPending = true
}

// Body returns the replaced body markup, if the page body was replaced.
func (d *Document) Body() (string, bool) {
	return d.body, d.bodyReplaced
}

func (d *Document) AppendOption(selectID string, option render.Option) {
	d.options[selectID] = append(d.options[selectID], option)
}

func (d *Document) Options(selectID string) []render.Option {
	return d.options[selectID]
}

func (d *Document) OnChange(selectID string, handler pages.ChangeHandler) {
	d.changeHandlers[selectID] = handler
}

func (d *Document) Dataset(key string) (string, bool) {
	v, ok := d.dataset[key]
	return v, ok
}

func (d *Document) AppendRow(tableID string, row render.Row) {
	d.rows[tableID] = append(d.rows[tableID], row)
}

func (d *Document) Rows(tableID string) []render.Row {
	return d.rows[tableID]
}

func (d *Document) RenderChart(canvasID string, chart render.Chart) {
	d.charts[canvasID] = chart
	d.pendingChart = append(d.pendingChart, canvasID)
}

func (d *Document) Chart(canvasID string) (render.Chart, bool) {
	c, ok := d.charts[canvasID]
	return c, ok
}

package pages_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/2beens/prtracker/internal/pages"
	"github.com/2beens/prtracker/internal/render"
)

var _ pages.Document = (*fakeDocument)(nil)

type fakeDocument struct {
	elements map[string]bool
	forms    map[string]map[string]string
	dataset  map[string]string

	texts        map[string]string
	options      map[string][]render.Option
	rows         map[string][]render.Row
	charts       map[string]render.Chart
	body         string
	bodyReplaced bool

	submitHandlers map[string]pages.SubmitHandler
	changeHandlers map[string]pages.ChangeHandler
}

func newFakeDocument(elementIDs ...string) *fakeDocument {
	doc := &fakeDocument{
		elements:       map[string]bool{},
		forms:          map[string]map[string]string{},
		dataset:        map[string]string{},
		texts:          map[string]string{},
		options:        map[string][]render.Option{},
		rows:           map[string][]render.Row{},
		charts:         map[string]render.Chart{},
		body:           "<original/>",
		submitHandlers: map[string]pages.SubmitHandler{},
		changeHandlers: map[string]pages.ChangeHandler{},
	}
	for _, id := range elementIDs {
		doc.elements[id] = true
	}
	return doc
}

func (d *fakeDocument) withForm(formID string, values map[string]string) *fakeDocument {
	d.elements[formID] = true
	d.forms[formID] = values
	return d
}

func (d *fakeDocument) Has(id string) bool {
	return d.elements[id]
}

func (d *fakeDocument) FormValues(formID string) map[string]string {
	values := map[string]string{}
	for k, v := range d.forms[formID] {
		values[k] = v
	}
	return values
}

func (d *fakeDocument) SetText(id, text string) {
	d.texts[id] = text
}

func (d *fakeDocument) OnSubmit(formID string, handler pages.SubmitHandler) {
	d.submitHandlers[formID] = handler
}

func (d *fakeDocument) ReplaceBody(markup string) {
	d.body = markup
	d.bodyReplaced = true
}

func (d *fakeDocument) AppendOption(selectID string, option render.Option) {
	d.options[selectID] = append(d.options[selectID], option)
}

func (d *fakeDocument) OnChange(selectID string, handler pages.ChangeHandler) {
	d.changeHandlers[selectID] = handler
}

func (d *fakeDocument) Dataset(key string) (string, bool) {
	v, ok := d.dataset[key]
	return v, ok
}

func (d *fakeDocument) AppendRow(tableID string, row render.Row) {
	d.rows[tableID] = append(d.rows[tableID], row)
}

func (d *fakeDocument) RenderChart(canvasID string, chart render.Chart) {
	d.charts[canvasID] = chart
}

func (d *fakeDocument) submit(t *testing.T, formID string) {
	t.Helper()
	handler, ok := d.submitHandlers[formID]
	require.True(t, ok, "no submit handler bound on %s", formID)
	handler(context.Background())
}

func (d *fakeDocument) change(t *testing.T, selectID, value string) {
	t.Helper()
	handler, ok := d.changeHandlers[selectID]
	require.True(t, ok, "no change handler bound on %s", selectID)
	handler(context.Background(), value)
}

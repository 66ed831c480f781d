package pages

import (
	"context"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/prtracker/internal/credentials"
	"github.com/2beens/prtracker/internal/personalrecords"
	"github.com/2beens/prtracker/internal/render"
	"github.com/2beens/prtracker/internal/router"
	"github.com/2beens/prtracker/internal/telemetry/metrics"
)

// RecordForm registers a new personal record.
type RecordForm struct {
	machine
	view     RecordFormView
	store    credentials.Store
	fetcher  Fetcher
	nav      Navigator
	exercise string
}

func NewRecordForm(
	view RecordFormView,
	store credentials.Store,
	fetcher Fetcher,
	nav Navigator,
	metricsManager *metrics.Manager,
) *RecordForm {
	return &RecordForm{
		machine: newMachine(router.RecordFormController, metricsManager),
		view:    view,
		store:   store,
		fetcher: fetcher,
		nav:     nav,
	}
}

func (c *RecordForm) Start(ctx context.Context) {
	c.set(StateAwaitingAuthCheck)
	if _, ok := c.store.Get(ctx); !ok {
		c.view.ReplaceBody(render.AuthPrompt())
		c.set(StateUnauthenticated)
		return
	}

	if c.view.Has(router.ExerciseSelectElement) {
		c.set(StateFetching)
		c.loadExercises(ctx)
	}
	if c.view.Has(router.RecordFormElement) {
		c.view.OnSubmit(router.RecordFormElement, c.submit)
	}
	c.set(StateRendered)
}

// loadExercises fills the optional exercise picker. A failure leaves the form usable.
func (c *RecordForm) loadExercises(ctx context.Context) {
	c.view.OnChange(router.ExerciseSelectElement, func(_ context.Context, value string) {
		c.exercise = value
	})

	var exercises []personalrecords.Exercise
	if err := c.fetcher.Get(ctx, router.ExercisesAPI, &exercises); err != nil {
		c.view.SetText(router.MessageElement, formFailureMessage(c.id, err))
		return
	}
	for _, option := range render.ExerciseOptions(exercises) {
		c.view.AppendOption(router.ExerciseSelectElement, option)
	}
}

func (c *RecordForm) submit(ctx context.Context) {
	req, err := NewRecordRequest(c.view.FormValues(router.RecordFormElement), c.exercise)
	if err != nil {
		c.view.SetText(router.MessageElement, formFailureMessage(c.id, err))
		c.set(StateFailed)
		return
	}

	c.set(StateFetching)
	var resp personalrecords.MessageResponse
	if err := c.fetcher.Post(ctx, router.AddRecordAPI, req, &resp); err != nil {
		c.view.SetText(router.MessageElement, formFailureMessage(c.id, err))
		c.set(StateFailed)
		return
	}

	log.Debugf("[%s] added: %s", c.id, resp.Message)
	c.view.SetText(router.MessageElement, resp.Message)
	c.set(StateRendered)
	c.nav.Navigate(router.RecordAddedPage)
}

// NewRecordRequest converts the raw form text. Integer fields are trimmed and must parse completely;
// selectedExercise is used when exo_id was left blank.
func NewRecordRequest(values map[string]string, selectedExercise string) (personalrecords.NewRecordRequest, error) {
	var req personalrecords.NewRecordRequest

	exoID := values["exo_id"]
	if strings.TrimSpace(exoID) == "" {
		exoID = selectedExercise
	}

	var err error
	if req.ExoID, err = parseInt("exo_id", exoID); err != nil {
		return req, err
	}
	if req.PR, err = requiredText("pr", values["pr"]); err != nil {
		return req, err
	}
	if req.Quantity, err = parseInt("quantity", values["quantity"]); err != nil {
		return req, err
	}
	if req.Time, err = parseInt("time", values["time"]); err != nil {
		return req, err
	}
	if req.Date, err = requiredText("date", values["date"]); err != nil {
		return req, err
	}
	if req.AddedWeight, err = parseInt("added_weight", values["added_weight"]); err != nil {
		return req, err
	}
	if req.Weight, err = parseInt("weight", values["weight"]); err != nil {
		return req, err
	}

	return req, nil
}

func parseInt(field, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &ValidationError{Field: field, Reason: ReasonMissing}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ValidationError{Field: field, Reason: ReasonNotANumber}
	}
	return n, nil
}

func requiredText(field, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", &ValidationError{Field: field, Reason: ReasonMissing}
	}
	return raw, nil
}

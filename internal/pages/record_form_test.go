package pages_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/2beens/prtracker/internal/pages"
	"github.com/2beens/prtracker/internal/personalrecords"
	"github.com/2beens/prtracker/internal/render"
)

func validRecordValues() map[string]string {
	return map[string]string{
		"exo_id":       "3",
		"pr":           "1RM",
		"quantity":     " 5 ",
		"time":         "0",
		"date":         "2024-05-02",
		"added_weight": "25",
		"weight":       "105",
	}
}

func TestRecordForm_Unauthenticated(t *testing.T) {
	env := newTestEnv(t)
	nav := NewMockNavigator(gomock.NewController(t))

	doc := newFakeDocument("message", "exoSelect").withForm("registerPR", validRecordValues())
	form := pages.NewRecordForm(doc, env.store, env.client, nav, env.metricsManager)
	form.Start(context.Background())

	assert.Equal(t, "<p>Veuillez vous connecter.</p>", doc.body)
	assert.Equal(t, pages.StateUnauthenticated, form.State())
	assert.Empty(t, doc.submitHandlers)
	assert.Empty(t, env.backend.Requests())
}

func TestRecordForm_Submit(t *testing.T) {
	env := newTestEnv(t)
	env.logIn(t)
	ctrl := gomock.NewController(t)
	nav := NewMockNavigator(ctrl)
	nav.EXPECT().Navigate("/personal-record-added").Times(1)

	doc := newFakeDocument("message").withForm("registerPR", validRecordValues())
	form := pages.NewRecordForm(doc, env.store, env.client, nav, env.metricsManager)
	form.Start(context.Background())
	require.Equal(t, pages.StateRendered, form.State())

	doc.submit(t, "registerPR")

	added := env.backend.Added()
	require.Len(t, added, 1)
	assert.Equal(t, map[string]any{
		"exo_id":       3.0,
		"pr":           "1RM",
		"quantity":     5.0,
		"time":         0.0,
		"date":         "2024-05-02",
		"added_weight": 25.0,
		"weight":       105.0,
	}, added[0])
	assert.Equal(t, "PR ajouté avec succès.", doc.texts["message"])
	assert.Equal(t, pages.StateRendered, form.State())

	requests := env.backend.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "application/json", requests[0].ContentType)
	assert.NotEmpty(t, requests[0].Authorization)
}

func TestRecordForm_ValidationBeforeSubmit(t *testing.T) {
	testCases := []struct {
		name            string
		field           string
		value           string
		expectedMessage string
	}{
		{"not a number", "quantity", "five", "Valeur numérique invalide : quantity"},
		{"decimal weight", "weight", "72.5", "Valeur numérique invalide : weight"},
		{"empty number", "added_weight", "  ", "Champs manquants"},
		{"empty pr", "pr", "", "Champs manquants"},
		{"empty date", "date", "", "Champs manquants"},
		{"nan", "time", "NaN", "Valeur numérique invalide : time"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.logIn(t)
			nav := NewMockNavigator(gomock.NewController(t))

			values := validRecordValues()
			values[tc.field] = tc.value
			doc := newFakeDocument("message").withForm("registerPR", values)
			form := pages.NewRecordForm(doc, env.store, env.client, nav, env.metricsManager)
			form.Start(context.Background())
			doc.submit(t, "registerPR")

			assert.Equal(t, tc.expectedMessage, doc.texts["message"])
			assert.Equal(t, pages.StateFailed, form.State())
			assert.Empty(t, env.backend.Requests())
			assert.False(t, doc.bodyReplaced)
		})
	}
}

func TestRecordForm_ServerRejects(t *testing.T) {
	env := newTestEnv(t)
	env.logIn(t)
	env.backend.Failures["/personal-record"] = http.StatusBadRequest
	nav := NewMockNavigator(gomock.NewController(t))

	doc := newFakeDocument("message").withForm("registerPR", validRecordValues())
	form := pages.NewRecordForm(doc, env.store, env.client, nav, env.metricsManager)
	form.Start(context.Background())
	doc.submit(t, "registerPR")

	assert.Equal(t, "Bad Request", doc.texts["message"])
	assert.Equal(t, pages.StateFailed, form.State())
	assert.Empty(t, env.backend.Added())
}

func TestRecordForm_ExercisePicker(t *testing.T) {
	env := newTestEnv(t)
	env.logIn(t)
	env.backend.SetExercises(
		map[string]any{"id": 3, "name": "Pull up"},
		map[string]any{"id": 7, "name": "Dips"},
	)
	ctrl := gomock.NewController(t)
	nav := NewMockNavigator(ctrl)
	nav.EXPECT().Navigate("/personal-record-added").Times(1)

	values := validRecordValues()
	values["exo_id"] = ""
	doc := newFakeDocument("message", "exoSelect").withForm("registerPR", values)
	form := pages.NewRecordForm(doc, env.store, env.client, nav, env.metricsManager)
	form.Start(context.Background())

	assert.Equal(t, []render.Option{
		render.NewOption("3", "Pull up"),
		render.NewOption("7", "Dips"),
	}, doc.options["exoSelect"])

	doc.change(t, "exoSelect", "7")
	doc.submit(t, "registerPR")

	added := env.backend.Added()
	require.Len(t, added, 1)
	assert.Equal(t, 7.0, added[0]["exo_id"])
}

func TestRecordForm_ExercisePickerUnavailable(t *testing.T) {
	env := newTestEnv(t)
	env.logIn(t)
	env.backend.Failures["/exo"] = http.StatusInternalServerError
	nav := NewMockNavigator(gomock.NewController(t))

	doc := newFakeDocument("message", "exoSelect").withForm("registerPR", validRecordValues())
	form := pages.NewRecordForm(doc, env.store, env.client, nav, env.metricsManager)
	form.Start(context.Background())

	// the form stays usable
	assert.Equal(t, "Internal Server Error", doc.texts["message"])
	assert.False(t, doc.bodyReplaced)
	assert.Contains(t, doc.submitHandlers, "registerPR")
	assert.Equal(t, pages.StateRendered, form.State())
}

func TestNewRecordRequest(t *testing.T) {
	req, err := pages.NewRecordRequest(validRecordValues(), "")
	require.NoError(t, err)
	assert.Equal(t, personalrecords.NewRecordRequest{
		ExoID:       3,
		PR:          "1RM",
		Quantity:    5,
		Time:        0,
		Date:        "2024-05-02",
		AddedWeight: 25,
		Weight:      105,
	}, req)

	values := validRecordValues()
	values["exo_id"] = ""
	req, err = pages.NewRecordRequest(values, "12")
	require.NoError(t, err)
	assert.Equal(t, 12, req.ExoID)

	// typed value wins over the picker
	req, err = pages.NewRecordRequest(validRecordValues(), "12")
	require.NoError(t, err)
	assert.Equal(t, 3, req.ExoID)

	values["added_weight"] = "-10"
	req, err = pages.NewRecordRequest(values, "1")
	require.NoError(t, err)
	assert.Equal(t, -10, req.AddedWeight)

	_, err = pages.NewRecordRequest(map[string]string{}, "")
	var validationErr *pages.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "exo_id", validationErr.Field)
	assert.Equal(t, pages.ReasonMissing, validationErr.Reason)
}

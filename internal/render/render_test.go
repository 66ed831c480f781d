package render_test

import (
	"strconv"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/prtracker/internal/personalrecords"
	"github.com/2beens/prtracker/internal/render"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestOptions(t *testing.T) {
	prOptions := render.PRTypeOptions([]personalrecords.PRTypeOption{
		{PR: "bench", Exercise: "press"},
		{PR: "squat"},
	})
	assert.Equal(t, []render.Option{
		{Value: "bench/press", Label: "bench - press"},
		{Value: "squat", Label: "squat"},
	}, prOptions)

	activityOptions := render.ActivityOptions([]personalrecords.ActivityOption{"run", "ride"})
	assert.Equal(t, []render.Option{
		{Value: "run", Label: "run"},
		{Value: "ride", Label: "ride"},
	}, activityOptions)

	exerciseOptions := render.ExerciseOptions([]personalrecords.Exercise{{ID: 3, Name: "Pull up"}})
	assert.Equal(t, []render.Option{{Value: "3", Label: "Pull up"}}, exerciseOptions)

	// both selects are built by the same constructor
	assert.Equal(t, render.NewOption("run", "run"), activityOptions[0])
	assert.Equal(t, render.NewOption("squat", "squat"), prOptions[1])
	assert.Equal(t, render.Option{Value: "x", Label: "x"}, render.NewOption("x", ""))

	assert.NotNil(t, render.PRTypeOptions(nil))
	assert.Empty(t, render.ActivityOptions(nil))
}

func TestEntryRow(t *testing.T) {
	entry := personalrecords.Entry{
		Date:        "2024-03-01",
		Quantity:    5,
		Time:        floatPtr(12.5),
		AddedWeight: 22.5,
		Weight:      100,
		Bodyweight:  81.3,
	}

	assert.Equal(t, []string{"2024-03-01", "5", "12.5", "22.5", "100", "81.3"}, render.EntryRow(entry, true).Cells)
	assert.Equal(t, []string{"2024-03-01", "5", "22.5", "100", "81.3"}, render.EntryRow(entry, false).Cells)
	assert.Len(t, render.EntryHeader(true), 6)
	assert.Len(t, render.EntryHeader(false), 5)

	entry.Time = nil
	assert.Equal(t, "", render.EntryRow(entry, true).Cells[2])
}

func TestEntryRows_KeepOrderAndValues(t *testing.T) {
	faker := gofakeit.New(42)
	entries := make([]personalrecords.Entry, 20)
	for i := range entries {
		entries[i] = personalrecords.Entry{
			Date:        faker.Date().Format("2006-01-02"),
			Quantity:    float64(faker.Number(1, 20)),
			AddedWeight: faker.Float64Range(-30, 150),
			Weight:      faker.Float64Range(40, 120),
			Bodyweight:  faker.Float64Range(50, 110),
		}
	}

	rows := render.EntryRows(entries, false)
	chart := render.ProgressChart(personalrecords.NewSeries(entries))
	require.Len(t, rows, len(entries))
	require.Len(t, chart.Labels, len(entries))
	require.Len(t, chart.Datasets, 1)

	for i, entry := range entries {
		assert.Equal(t, entry.Date, rows[i].Cells[0])
		assert.Equal(t, entry.Date, chart.Labels[i])

		cellValue, err := strconv.ParseFloat(rows[i].Cells[2], 64)
		require.NoError(t, err)
		assert.Equal(t, entry.AddedWeight, cellValue)
		assert.Equal(t, entry.AddedWeight, chart.Datasets[0].Data[i])
	}
}

func TestProgressChart(t *testing.T) {
	series := personalrecords.Series{
		Dates:        []string{"2024-01-01", "2024-02-01"},
		AddedWeights: []float64{10, 12.5},
	}
	chart := render.ProgressChart(series)

	assert.Equal(t, "line", chart.Type)
	assert.Equal(t, "Date", chart.XTitle)
	assert.Equal(t, "Added weight", chart.YTitle)
	assert.False(t, chart.BeginAtZero)
	assert.Equal(t, []string{"2024-01-01", "2024-02-01"}, chart.Labels)
	assert.Equal(t, render.Dataset{
		Label:           "Added weight",
		Data:            []float64{10, 12.5},
		BorderColor:     "rgba(75, 192, 192, 1)",
		BackgroundColor: "rgba(75, 192, 192, 0.2)",
		Fill:            true,
	}, chart.Datasets[0])

	// the chart owns its slices
	chart.Labels[0] = "changed"
	assert.Equal(t, "2024-01-01", series.Dates[0])

	empty := render.ProgressChart(personalrecords.NewSeries(nil))
	assert.Empty(t, empty.Labels)
	assert.Empty(t, empty.Datasets[0].Data)
}

func TestMarkup(t *testing.T) {
	assert.Equal(t, "<p>Veuillez vous connecter.</p>", render.AuthPrompt())
	assert.Equal(t, "<p>Erreur lors du chargement des PR.</p>", render.LoadError())
	assert.Equal(t, "<p>Aucun PR trouvé pour bench</p>", render.Message("Aucun PR trouvé pour bench"))
	assert.Equal(t, "<p>oops</p>", render.Message(`oops<script>alert("x")</script>`))
}

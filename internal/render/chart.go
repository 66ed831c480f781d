package render

import (
	"github.com/2beens/prtracker/internal/personalrecords"
)

const (
	AddedWeightLabel      = "Added weight"
	addedWeightBorder     = "rgba(75, 192, 192, 1)"
	addedWeightBackground = "rgba(75, 192, 192, 0.2)"
	lineChart             = "line"
	dateAxisTitle         = "Date"
)

type Dataset struct {
	Label           string
	Data            []float64
	BorderColor     string
	BackgroundColor string
	Fill            bool
}

type Chart struct {
	Type        string
	Labels      []string
	Datasets    []Dataset
	XTitle      string
	YTitle      string
	BeginAtZero bool
}

// ProgressChart is a line chart of added weight over the series dates.
// The y axis is not zero based.
func ProgressChart(series personalrecords.Series) Chart {
	labels := append([]string{}, series.Dates...)
	data := append([]float64{}, series.AddedWeights...)
	return Chart{
		Type:   lineChart,
		Labels: labels,
		Datasets: []Dataset{
			{
				Label:           AddedWeightLabel,
				Data:            data,
				BorderColor:     addedWeightBorder,
				BackgroundColor: addedWeightBackground,
				Fill:            true,
			},
		},
		XTitle:      dateAxisTitle,
		YTitle:      AddedWeightLabel,
		BeginAtZero: false,
	}
}

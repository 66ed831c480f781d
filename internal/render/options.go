package render

import (
	"strconv"

	"github.com/2beens/prtracker/internal/personalrecords"
)

// Option is one entry of a select list.
// Every select is filled through NewOption, so all lists share the same shape.
type Option struct {
	Value string
	Label string
}

func NewOption(value, label string) Option {
	if label == "" {
		label = value
	}
	return Option{Value: value, Label: label}
}

func PRTypeOptions(prTypes []personalrecords.PRTypeOption) []Option {
	options := make([]Option, 0, len(prTypes))
	for _, prType := range prTypes {
		options = append(options, NewOption(prType.Value(), prType.Label()))
	}
	return options
}

func ActivityOptions(activities []personalrecords.ActivityOption) []Option {
	options := make([]Option, 0, len(activities))
	for _, activity := range activities {
		options = append(options, NewOption(string(activity), string(activity)))
	}
	return options
}

func ExerciseOptions(exercises []personalrecords.Exercise) []Option {
	options := make([]Option, 0, len(exercises))
	for _, exercise := range exercises {
		options = append(options, NewOption(strconv.Itoa(exercise.ID), exercise.Name))
	}
	return options
}

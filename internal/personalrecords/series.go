package personalrecords

// Series holds the chart projection of a list of entries.
// Dates[i] and AddedWeights[i] always come from the same entry.
type Series struct {
	Dates        []string
	AddedWeights []float64
}

// NewSeries keeps the order the server returned; entries are not re-sorted.
func NewSeries(entries []Entry) Series {
	s := Series{
		Dates:        make([]string, 0, len(entries)),
		AddedWeights: make([]float64, 0, len(entries)),
	}
	for _, e := range entries {
		s.Dates = append(s.Dates, e.Date)
		s.AddedWeights = append(s.AddedWeights, e.AddedWeight)
	}
	return s
}

func (s Series) Len() int {
	return len(s.Dates)
}

package render

import (
	"strconv"

	"github.com/2beens/prtracker/internal/personalrecords"
)

type Row struct {
	Cells []string
}

// EntryHeader matches the cells produced by EntryRow.
func EntryHeader(withTime bool) []string {
	if withTime {
		return []string{"Date", "Quantity", "Time", "Added weight", "Weight", "Bodyweight"}
	}
	return []string{"Date", "Quantity", "Added weight", "Weight", "Bodyweight"}
}

// EntryRow renders date, quantity, (time), added weight, weight and bodyweight.
// A missing time is an empty cell.
func EntryRow(entry personalrecords.Entry, withTime bool) Row {
	cells := []string{entry.Date, FormatNumber(entry.Quantity)}
	if withTime {
		timeCell := ""
		if entry.Time != nil {
			timeCell = FormatNumber(*entry.Time)
		}
		cells = append(cells, timeCell)
	}
	cells = append(cells,
		FormatNumber(entry.AddedWeight),
		FormatNumber(entry.Weight),
		FormatNumber(entry.Bodyweight),
	)
	return Row{Cells: cells}
}

func EntryRows(entries []personalrecords.Entry, withTime bool) []Row {
	rows := make([]Row, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, EntryRow(entry, withTime))
	}
	return rows
}

// FormatNumber uses the shortest decimal that parses back to the same value.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

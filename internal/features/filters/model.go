package filters

import "fmt"

// FilterState holds every filter field of the report screen. An empty
// string means the field places no constraint on the result set.
type FilterState struct {
	Status     string `json:"status"`
	Department string `json:"department"`
	Priority   string `json:"priority"`
	DateFrom   string `json:"date_from"`
	DateTo     string `json:"date_to"`
	Search     string `json:"search"`
}

// NewFilterState builds a FilterState from a partial set of initial
// values. Fields absent from the map default to empty string.
func NewFilterState(initial map[string]string) FilterState {
	var f FilterState
	for field, value := range initial {
		// Unknown keys are ignored on purpose
		f.Set(field, value)
	}
	return f
}

// Set assigns a field by its wire name
func (f *FilterState) Set(field, value string) error {
	switch field {
	case "status":
		f.Status = value
	case "department":
		f.Department = value
	case "priority":
		f.Priority = value
	case "dateFrom", "date_from":
		f.DateFrom = value
	case "dateTo", "date_to":
		f.DateTo = value
	case "search":
		f.Search = value
	default:
		return fmt.Errorf("unknown filter field: %s", field)
	}
	return nil
}

// IsZero reports whether every field is unconstrained
func (f FilterState) IsZero() bool {
	return f == FilterState{}
}

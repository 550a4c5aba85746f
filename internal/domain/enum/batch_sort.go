package enum

// BatchSort selects the ordering of packing sheets within a date batch
type BatchSort string

const (
	// BatchSortName orders sheets by customer display name
	BatchSortName BatchSort = "name"
	// BatchSortRoute orders sheets by delivery route key, customer name as tiebreak
	BatchSortRoute BatchSort = "route"
)

// IsValid checks if the sort key is a supported value
func (s BatchSort) IsValid() bool {
	return s == BatchSortName || s == BatchSortRoute
}

func (s BatchSort) String() string {
	return string(s)
}

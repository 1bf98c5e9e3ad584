package museum

// Exhibit is a single search hit.
type Exhibit struct {
	Row         int // position in the corpus
	Name        string
	URL         string
	Authors     []string
	Description string // truncated to the description limit
	Distance    float64
}

// Exhibition is an (exhibition, collection) group and its record count.
type Exhibition struct {
	Name       string
	Collection string
	Count      int
	Display    string // "<exhibition>, <collection>" with the placeholder for a blank collection
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"error"
}

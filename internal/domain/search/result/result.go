package result

// DefaultDescriptionLimit is the maximum description length, in characters, shown in a hit.
const DefaultDescriptionLimit = 200

// Result is a single search hit joined back to its corpus record.
type Result struct {
	row         int
	distance    float64
	name        string
	url         string
	authors     []string
	description string
}

// New creates a search result. The description is stored as given; callers truncate first.
func New(row int, distance float64, name, url string, authors []string, description string) Result {
	return Result{
		row: row, distance: distance, name: name,
		url: url, authors: authors, description: description,
	}
}

// Row returns the corpus position of the hit.
func (r *Result) Row() int { return r.row }

// Distance returns the squared Euclidean distance to the query vector.
func (r *Result) Distance() float64 { return r.distance }

// Name returns the exhibit title.
func (r *Result) Name() string { return r.name }

// URL returns the source page of the exhibit.
func (r *Result) URL() string { return r.url }

// Authors returns the exhibit authors.
func (r *Result) Authors() []string { return r.authors }

// Description returns the (possibly truncated) exhibit description.
func (r *Result) Description() string { return r.description }

// Truncate returns the first limit characters of s. Strings of limit characters or fewer
// are returned unchanged. Characters are Unicode code points.
func Truncate(s string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}

package exhibition

import "github.com/kailas-cloud/museum-search/internal/domain/catalog"

// Corpus is read in full for every aggregation.
type Corpus interface {
	Len() int
	At(row int) catalog.Record
}

package catalog

import (
	"fmt"

	"github.com/kailas-cloud/museum-search/internal/domain"
)

// MissingValue is the scraper's marker for a field absent on the source page.
const MissingValue = "Не указано"

// Record is one catalog entry. Its position in the Corpus is the join key to index rows.
type Record struct {
	Title        string   `json:"title"`
	Authors      []string `json:"authors"`
	CreationTime string   `json:"creation_time"`
	Size         string   `json:"size"`
	Technique    string   `json:"technique"`
	Collection   string   `json:"collection"`
	Exhibition   string   `json:"exhibition"`
	Description  string   `json:"description"`
	URL          string   `json:"url"`
}

// Corpus is an immutable, ordered sequence of records.
type Corpus struct {
	records []Record
}

// New builds a corpus over a copy of records. An empty corpus is rejected.
func New(records []Record) (*Corpus, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: corpus has no records", domain.ErrMalformedInput)
	}
	cp := make([]Record, len(records))
	copy(cp, records)
	return &Corpus{records: cp}, nil
}

// Len returns the number of records.
func (c *Corpus) Len() int { return len(c.records) }

// At returns the record at row. It panics when row is out of range, like slice indexing.
func (c *Corpus) At(row int) Record { return c.records[row] }

// Records returns a copy of all records in corpus order.
func (c *Corpus) Records() []Record {
	cp := make([]Record, len(c.records))
	copy(cp, c.records)
	return cp
}

package corpus

import (
	"strings"

	"github.com/kailas-cloud/museum-search/internal/domain/catalog"
)

// item is one scraped page. Null fields decode as empty strings.
type item struct {
	Title        *string  `json:"title"`
	Authors      []string `json:"authors"`
	CreationTime *string  `json:"creation_time"`
	Size         *string  `json:"size"`
	Technique    *string  `json:"technique"`
	Collection   *string  `json:"collection"`
	Exhibition   *string  `json:"exhibition"`
	Description  *string  `json:"description"`
	URL          *string  `json:"url"`
}

func (it *item) record() catalog.Record {
	return catalog.Record{
		Title:        deref(it.Title),
		Authors:      it.Authors,
		CreationTime: deref(it.CreationTime),
		Size:         deref(it.Size),
		Technique:    deref(it.Technique),
		Collection:   deref(it.Collection),
		Exhibition:   deref(it.Exhibition),
		Description:  deref(it.Description),
		URL:          deref(it.URL),
	}
}

// parquetRow mirrors a dataframe written with optional string columns.
type parquetRow struct {
	Title        *string  `parquet:"title,optional"`
	Authors      []string `parquet:"authors,list"`
	CreationTime *string  `parquet:"creation_time,optional"`
	Size         *string  `parquet:"size,optional"`
	Technique    *string  `parquet:"technique,optional"`
	Collection   *string  `parquet:"collection,optional"`
	Exhibition   *string  `parquet:"exhibition,optional"`
	Description  *string  `parquet:"description,optional"`
	URL          *string  `parquet:"url,optional"`
}

func (r *parquetRow) record() catalog.Record {
	return catalog.Record{
		Title:        deref(r.Title),
		Authors:      r.Authors,
		CreationTime: deref(r.CreationTime),
		Size:         deref(r.Size),
		Technique:    deref(r.Technique),
		Collection:   deref(r.Collection),
		Exhibition:   deref(r.Exhibition),
		Description:  deref(r.Description),
		URL:          deref(r.URL),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ParseAuthors decodes the authors cell of a CSV export. Lists are written in Python
// notation ("['A', 'B']"); any other non-empty value is a single author.
func ParseAuthors(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "[]" {
		return nil
	}
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return []string{s}
	}

	var (
		out   []string
		cur   strings.Builder
		quote rune
		esc   bool
	)
	for _, r := range s[1 : len(s)-1] {
		switch {
		case esc:
			cur.WriteRune(r)
			esc = false
		case quote != 0 && r == '\\':
			esc = true
		case quote != 0 && r == quote:
			out = append(out, cur.String())
			cur.Reset()
			quote = 0
		case quote != 0:
			cur.WriteRune(r)
		case r == '\'' || r == '"':
			quote = r
		}
	}
	return out
}

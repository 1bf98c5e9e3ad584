// Package corpus loads the catalog produced by the scraping pipeline.
package corpus

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/kailas-cloud/museum-search/internal/domain"
	"github.com/kailas-cloud/museum-search/internal/domain/catalog"
)

// Supported corpus formats, selected by file extension.
const (
	FormatCSV       = ".csv"
	FormatJSON      = ".json"
	FormatJSONLines = ".jsonl"
	FormatParquet   = ".parquet"
)

// Load reads the corpus at path. A missing file is reported as domain.ErrResourceMissing,
// undecodable content and an empty table as domain.ErrMalformedInput.
func Load(path string) (*catalog.Corpus, error) {
	records, err := read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewMissingResource(domain.ResourceCorpus, path, err)
		}
		return nil, domain.NewMalformedResource(domain.ResourceCorpus, path, err)
	}
	c, err := catalog.New(records)
	if err != nil {
		return nil, &domain.ResourceError{Kind: domain.ResourceCorpus, Path: path, Err: err}
	}
	return c, nil
}

func read(path string) ([]catalog.Record, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == FormatParquet {
		return readParquet(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	switch ext {
	case FormatCSV:
		return ReadCSV(f)
	case FormatJSON:
		return ReadJSON(f)
	case FormatJSONLines:
		return ReadJSONLines(f)
	default:
		return nil, fmt.Errorf("unsupported corpus format %q", ext)
	}
}

// ReadCSV decodes a header-led CSV table. Columns are matched by name; unknown columns
// are ignored and missing ones stay empty.
func ReadCSV(r io.Reader) ([]catalog.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}

	var out []catalog.Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}
		out = append(out, catalog.Record{
			Title:        field("title"),
			Authors:      ParseAuthors(field("authors")),
			CreationTime: field("creation_time"),
			Size:         field("size"),
			Technique:    field("technique"),
			Collection:   field("collection"),
			Exhibition:   field("exhibition"),
			Description:  field("description"),
			URL:          field("url"),
		})
	}
}

// ReadJSON decodes the scraper's JSON array feed.
func ReadJSON(r io.Reader) ([]catalog.Record, error) {
	var items []item
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode json feed: %w", err)
	}
	out := make([]catalog.Record, len(items))
	for i := range items {
		out[i] = items[i].record()
	}
	return out, nil
}

// ReadJSONLines decodes one scraper item per line.
func ReadJSONLines(r io.Reader) ([]catalog.Record, error) {
	dec := json.NewDecoder(r)
	var out []catalog.Record
	for {
		var it item
		err := dec.Decode(&it)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode json line %d: %w", len(out)+1, err)
		}
		out = append(out, it.record())
	}
}

func readParquet(path string) ([]catalog.Record, error) {
	rows, err := parquet.ReadFile[parquetRow](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}
	out := make([]catalog.Record, len(rows))
	for i := range rows {
		out[i] = rows[i].record()
	}
	return out, nil
}

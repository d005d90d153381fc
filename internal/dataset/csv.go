// Package dataset loads the movie table from a delimited text file.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/raphaelgruber/movierec/internal/models"
	"golang.org/x/text/transform"
)

// Column names read from the header row.
const (
	ColTitle    = "title"
	ColGenres   = "genres"
	ColKeywords = "keywords"
	ColTagline  = "tagline"
	ColCast     = "cast"
	ColDirector = "director"
	ColOverview = "overview"
)

// RequiredColumns must be present in the header.
var RequiredColumns = []string{ColTitle, ColGenres, ColKeywords, ColTagline, ColCast, ColDirector}

// missingMarkers are cell values treated as absent, in addition to "".
// They match the markers pandas recognizes by default.
var missingMarkers = map[string]bool{
	"#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true, "-1.#QNAN": true,
	"-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true, "<NA>": true,
	"N/A": true, "NA": true, "NULL": true, "NaN": true, "None": true,
	"n/a": true, "nan": true, "null": true,
}

// Dataset is the in-memory movie table.
type Dataset struct {
	Movies      []models.Movie
	HasOverview bool
	Path        string
	Encoding    string
}

// Len returns the number of movies.
func (d *Dataset) Len() int {
	return len(d.Movies)
}

// ReadOptions configures how a dataset file is decoded.
type ReadOptions struct {
	// Encoding of the file, DefaultEncoding when empty.
	Encoding string
	// Comma is the field delimiter, ',' when zero.
	Comma rune
}

// ReadFile opens path and parses it as a movie table.
func ReadFile(path string, opts ReadOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, unavailable(err)
	}
	defer f.Close()

	ds, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	ds.Path = path
	return ds, nil
}

// Read parses a movie table. Every cell is kept as text, so columns with
// mixed value types never fail the load.
func Read(r io.Reader, opts ReadOptions) (*Dataset, error) {
	enc, err := lookupEncoding(opts.Encoding)
	if err != nil {
		return nil, unavailable(err)
	}
	encName := opts.Encoding
	if encName == "" {
		encName = DefaultEncoding
	}

	reader := csv.NewReader(transform.NewReader(r, enc.NewDecoder()))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, unavailable(errors.New("empty file: no header row"))
		}
		return nil, unavailable(fmt.Errorf("read header: %w", err))
	}
	idx := headerIndex(header)

	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, unavailable(fmt.Errorf("missing column %s", col))
		}
	}
	_, hasOverview := idx[ColOverview]

	ds := &Dataset{
		HasOverview: hasOverview,
		Encoding:    encName,
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, unavailable(fmt.Errorf("row %d: %w", len(ds.Movies)+1, err))
		}

		title, hasTitle := cell(row, idx, ColTitle)
		m := models.Movie{
			Index:    len(ds.Movies),
			Title:    title,
			HasTitle: hasTitle,
			Genres:   text(row, idx, ColGenres),
			Keywords: text(row, idx, ColKeywords),
			Tagline:  text(row, idx, ColTagline),
			Cast:     text(row, idx, ColCast),
			Director: text(row, idx, ColDirector),
		}
		if hasOverview {
			overview := text(row, idx, ColOverview)
			m.Overview = &overview
		}
		ds.Movies = append(ds.Movies, m)
	}

	return ds, nil
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, col := range header {
		col = strings.TrimSpace(col)
		if i == 0 {
			col = strings.TrimPrefix(col, "\ufeff")
			col = strings.TrimPrefix(col, "\u00ef\u00bb\u00bf")
		}
		if _, dup := idx[col]; dup {
			continue
		}
		idx[col] = i
	}
	return idx
}

// cell returns the value of col and whether it is present.
func cell(row []string, idx map[string]int, col string) (string, bool) {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return "", false
	}
	val := row[i]
	if val == "" || missingMarkers[val] {
		return "", false
	}
	return val, true
}

// text returns the value of col, or "" when it is missing.
func text(row []string, idx map[string]int, col string) string {
	val, _ := cell(row, idx, col)
	return val
}

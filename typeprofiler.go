// Package typeprofiler is the library entry point the cmd/ binaries
// share: given a file, profile its columns with package profiler and
// optionally load the inferred schema into Postgres, the way the
// teacher's root package sequenced profile -> schema -> load.
package typeprofiler

import (
	"database/sql"
	"fmt"
	"path"
	"strings"

	"github.com/chop-dbhi/typeprofiler/pgload"
	"github.com/chop-dbhi/typeprofiler/profile"
	"github.com/chop-dbhi/typeprofiler/profile/csv"
	"github.com/chop-dbhi/typeprofiler/profiler"
	"github.com/chop-dbhi/typeprofiler/reader"
)

// Request describes one file-to-table load.
type Request struct {
	// Input path.
	Path string

	// Target database.
	Database string
	Schema   string
	Table    string

	// Behavior
	AppendTable bool
	CStore      bool

	// File specifics.
	CSV         bool
	Compression string

	// CSV
	Delimiter string
	Header    bool

	// Profiling options, applied uniformly to every field's Analyzer.
	SampleSize     int
	MaxCardinality int
	MaxOutliers    int
	ResolutionMode profiler.ResolutionMode
	Locale         string
}

// Profile profiles r.Path without touching a database, for the
// profile/validate CLI subcommands.
func Profile(r *Request) (*profile.Profile, error) {
	fileType, fileComp := reader.DetectType(r.Path)

	if r.CSV || fileType == "csv" {
		r.CSV = true
	} else {
		return nil, fmt.Errorf("file type not supported: %s", fileType)
	}

	if r.Compression == "" {
		r.Compression = fileComp
	}

	input, err := reader.Open(r.Path, r.Compression)
	if err != nil {
		return nil, fmt.Errorf("cannot open input: %s", err)
	}
	defer input.Close()

	cp := csv.NewProfiler(input)
	cp.Delimiter = r.Delimiter[0]
	cp.Header = r.Header
	cp.Config = &profile.Config{
		SampleSize:     r.SampleSize,
		MaxCardinality: r.MaxCardinality,
		MaxOutliers:    r.MaxOutliers,
		ResolutionMode: r.ResolutionMode,
		Locale:         r.Locale,
	}

	return cp.Profile()
}

// Import profiles r.Path, then creates (or appends to) the target
// table and COPYs the rows in — the teacher's Import, re-pointed at
// profiler.Analyzer-backed profiling and the pgload sink. It returns
// the number of rows loaded.
func Import(r *Request) (int64, error) {
	if r.Table == "" {
		_, base := path.Split(r.Path)
		r.Table = strings.Split(base, ".")[0]
	}

	prof, err := Profile(r)
	if err != nil {
		return 0, fmt.Errorf("profile error: %s", err)
	}

	db, err := sql.Open("postgres", r.Database)
	if err != nil {
		return 0, fmt.Errorf("cannot open db connection: %s", err)
	}
	defer db.Close()

	input, err := reader.Open(r.Path, r.Compression)
	if err != nil {
		return 0, fmt.Errorf("cannot open input: %s", err)
	}
	defer input.Close()

	schema := pgload.NewSchema(prof)
	if r.CStore {
		schema.Cstore = true
	}

	dbc := pgload.New(db)
	if r.AppendTable {
		return dbc.Append(r.Schema, r.Table, schema, input)
	}
	return dbc.Replace(r.Schema, r.Table, schema, input)
}

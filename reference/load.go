package reference

import (
	"bufio"
	"embed"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/chop-dbhi/typeprofiler/reader"
)

//go:embed data/*.csv
var embeddedData embed.FS

// Sets bundles every reference-data lookup the Logical-Type Matcher
// (spec §4.7) needs.
type Sets struct {
	ZIP            *StringSet
	USState        *StringSet
	CAProvince     *StringSet
	Country        *StringSet
	AddressMarkers *StringSet
	Gender         *StringSet
}

// DefaultSets loads the small, representative CSVs embedded in this
// module (spec §6 names the production source of truth as five
// external CSVs; DESIGN.md records the standing-in rationale). A
// caller with host-provided full files should use Load instead.
func DefaultSets() *Sets {
	return &Sets{
		ZIP:            mustLoadEmbedded("data/us_zips.csv"),
		USState:        mustLoadEmbedded("data/us_states.csv"),
		CAProvince:     mustLoadEmbedded("data/ca_provinces.csv"),
		Country:        mustLoadEmbedded("data/countries.csv"),
		AddressMarkers: mustLoadEmbedded("data/address_markers.csv"),
		Gender:         mustLoadEmbedded("data/genders.csv"),
	}
}

// Load reads the six reference files (us_zips, us_states,
// ca_provinces, countries, address_markers and genders, each .csv) out
// of dir, one entry per line, falling back to the embedded default for any file that
// isn't present.
func Load(dir string) (*Sets, error) {
	s := &Sets{}
	var err error

	if s.ZIP, err = loadOrDefault(dir, "us_zips.csv", "data/us_zips.csv"); err != nil {
		return nil, err
	}
	if s.USState, err = loadOrDefault(dir, "us_states.csv", "data/us_states.csv"); err != nil {
		return nil, err
	}
	if s.CAProvince, err = loadOrDefault(dir, "ca_provinces.csv", "data/ca_provinces.csv"); err != nil {
		return nil, err
	}
	if s.Country, err = loadOrDefault(dir, "countries.csv", "data/countries.csv"); err != nil {
		return nil, err
	}
	if s.AddressMarkers, err = loadOrDefault(dir, "address_markers.csv", "data/address_markers.csv"); err != nil {
		return nil, err
	}
	if s.Gender, err = loadOrDefault(dir, "genders.csv", "data/genders.csv"); err != nil {
		return nil, err
	}

	return s, nil
}

func loadOrDefault(dir, filename, embeddedPath string) (*StringSet, error) {
	if dir == "" {
		return mustLoadEmbedded(embeddedPath), nil
	}

	path := filepath.Join(dir, filename)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		logrus.WithField("file", path).Debug("reference file not found, using embedded default")
		return mustLoadEmbedded(embeddedPath), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := readLines(f)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"file": path, "entries": len(entries)}).Info("loaded reference set")
	return newStringSet(entries), nil
}

func mustLoadEmbedded(path string) *StringSet {
	f, err := embeddedData.Open(path)
	if err != nil {
		panic(err) // internal invariant: the embedded data is part of the binary
	}
	defer f.Close()

	entries, err := readLines(f)
	if err != nil {
		panic(err)
	}
	return newStringSet(entries)
}

// readLines scans one entry per line through the teacher's
// carriage-return-normalizing, BOM-stripping reader, rather than a
// bare bufio.Scanner, so reference files produced on any platform
// read the same way the CSV profiler's own input does.
func readLines(r io.Reader) ([]string, error) {
	ur := reader.NewUniversalReader(r)
	sc := bufio.NewScanner(ur)

	var lines []string
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, sc.Err()
}

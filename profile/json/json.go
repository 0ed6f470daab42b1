package json

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/chop-dbhi/typeprofiler/profile"
)

type analyzer struct {
	p profile.Profiler
}

// parseField renders each JSON scalar back to the raw text form
// profiler.Analyzer samples on, rather than threading a pre-decided
// ValueType through Record — the Sample Window decides the type from
// that text the same way it would from a CSV column.
func (a *analyzer) parseField(path, field string, value interface{}) {
	fp := fmt.Sprintf("%s%s", path, field)

	switch x := value.(type) {
	case nil:
		a.p.RecordNull(fp)

	// Nested object.
	case map[string]interface{}:
		a.parseMap(fp+"/", x)

	// Array.
	case []interface{}:
		for _, v := range x {
			a.parseField(path, field, v)
		}

	case bool:
		a.p.Record(fp, strconv.FormatBool(x))

	case string:
		a.p.Record(fp, x)

	case json.Number:
		a.p.Record(fp, x.String())

	default:
		panic(fmt.Sprintf("unsupported type: %#T", value))
	}
}

// types are identified relative to the path.
func (a *analyzer) parseMap(path string, m map[string]interface{}) {
	for k, v := range m {
		a.parseField(path, k, v)
	}
}

func (a *analyzer) parseLDJSON(r io.Reader) error {
	s := bufio.NewScanner(r)

	// Initialize buffer and JSON decoder.
	var b bytes.Buffer
	dec := json.NewDecoder(&b)
	dec.UseNumber()

	for s.Scan() {
		line := bytes.TrimSpace(s.Bytes())
		if len(line) == 0 {
			continue
		}

		b.Reset()
		b.Write(line)

		var m map[string]interface{}
		if err := dec.Decode(&m); err != nil {
			return err
		}

		a.parseMap("", m)
		a.p.Incr()
	}

	return s.Err()
}

func (a *analyzer) parseJSON(r io.Reader) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if tok != json.Delim('[') {
		return fmt.Errorf("expected array, got: %v", tok)
	}

	// More elements in the array.
	for dec.More() {
		var m map[string]interface{}
		if err := dec.Decode(&m); err != nil {
			return err
		}

		a.parseMap("", m)
		a.p.Incr()
	}

	return nil
}

func Profile(config *profile.Config, in io.Reader, format string) (*profile.Profile, error) {
	p, err := profile.NewProfiler(config)
	if err != nil {
		return nil, err
	}

	a := analyzer{
		p: p,
	}

	switch format {
	case "ldjson":
		err = a.parseLDJSON(in)
	case "json":
		err = a.parseJSON(in)
	}

	if err != nil {
		return nil, err
	}

	return p.Profile(), nil
}

// Package pgload materializes a profile.Profile into a Postgres
// table and COPYs the source rows into it, the way the teacher's
// pg.go turned a profile.Profile's ValueTypes into a schema. The SQL
// type map now keys off profiler.SemanticType/Qualifier instead of
// the old ValueType, so a ZIP-qualified Long still lands as text (a
// ZIP code with a leading zero is not an integer) and date/time
// fields land on the matching Postgres type instead of a blanket date.
package pgload

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"text/template"

	"github.com/lib/pq"
	uuid "github.com/satori/go.uuid"

	"github.com/chop-dbhi/typeprofiler/profile"
)

var (
	badChars *regexp.Regexp
	sepChars *regexp.Regexp

	sqlTmpl = template.New("sql")

	queryTmpls = map[string]string{
		"createSchema":      `create schema if not exists "{{.Schema}}"`,
		"createTable":       `create table if not exists "{{.Schema}}"."{{.Table}}" ( {{.Columns}} )`,
		"createCstoreTable": `create foreign table if not exists "{{.Schema}}"."{{.Table}}" ( {{.Columns}} ) server cstore_server options (compression 'pglz')`,
		"dropTable":         `drop table if exists "{{.Schema}}"."{{.Table}}"`,
		"renameTable":       `alter table "{{.Schema}}"."{{.TempTable}}" rename to "{{.Table}}"`,
		"analyzeTable":      `analyze "{{.Schema}}"."{{.Table}}"`,
	}
)

func init() {
	for name, tmpl := range queryTmpls {
		template.Must(sqlTmpl.New(name).Parse(tmpl))
	}

	badChars = regexp.MustCompile(`[^a-z0-9_\-\.\+]+`)
	sepChars = regexp.MustCompile(`[_\-\.\+]+`)
}

// sqlType maps an inferred field to the Postgres column type. A
// ZIP/state/province/country/gender/month-abbr/email/url/address
// qualifier always lands as text: these are String-family logical
// refinements, not distinct storage types.
func sqlType(f *profile.Field) string {
	if f.Qualifier != "" && f.Qualifier != "SIGNED" {
		return "text"
	}

	switch f.SemanticType {
	case "Boolean":
		return "boolean"
	case "Long":
		return "bigint"
	case "Double":
		return "double precision"
	case "LocalDate":
		return "date"
	case "LocalTime":
		return "time"
	case "LocalDateTime":
		return "timestamp"
	case "ZonedDateTime", "OffsetDateTime":
		return "timestamptz"
	default:
		return "text"
	}
}

type Schema struct {
	Cstore bool
	Fields map[string]*Field
}

func NewSchema(p *profile.Profile) *Schema {
	fields := make(map[string]*Field, len(p.Fields))

	for n, f := range p.Fields {
		fields[n] = &Field{
			Name:     n,
			Type:     sqlType(f),
			Unique:   f.Unique,
			Nullable: f.Nullable || f.Missing,
		}
	}

	return &Schema{
		Fields: fields,
	}
}

// Field is a data definition on a schema.
type Field struct {
	Name     string
	Type     string
	Multiple bool
	Unique   bool
	Nullable bool
}

type tableData struct {
	Schema    string
	TempTable string
	Table     string
	Columns   string
}

func cleanFieldName(n string) string {
	n = strings.ToLower(n)
	n = badChars.ReplaceAllString(n, "_")
	return sepChars.ReplaceAllString(n, "_")
}

type Client struct {
	db *sql.DB
}

func New(db *sql.DB) *Client {
	return &Client{db: db}
}

func (c *Client) execTx(fn func(tx *sql.Tx) error) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (c *Client) Replace(schemaName, tableName string, tableSchema *Schema, data io.Reader) (int64, error) {
	tempTableName := uuid.NewV4().String()

	if err := c.createSchema(schemaName); err != nil {
		return 0, err
	}

	if err := c.createTable(schemaName, tempTableName, tableSchema); err != nil {
		return 0, err
	}

	n, err := c.copyData(schemaName, tempTableName, tableSchema, data)
	if err != nil {
		return 0, err
	}

	if err := c.renameTable(schemaName, tempTableName, tableName); err != nil {
		return n, err
	}

	return n, c.analyzeTable(schemaName, tableName)
}

func (c *Client) Append(schemaName, tableName string, tableSchema *Schema, data io.Reader) (int64, error) {
	if err := c.createSchema(schemaName); err != nil {
		return 0, err
	}

	if err := c.createTable(schemaName, tableName, tableSchema); err != nil {
		return 0, err
	}

	n, err := c.copyData(schemaName, tableName, tableSchema, data)
	if err != nil {
		return 0, err
	}

	return n, c.analyzeTable(schemaName, tableName)
}

func (c *Client) createSchema(schemaName string) error {
	data := &tableData{Schema: schemaName}

	var b bytes.Buffer
	if err := sqlTmpl.ExecuteTemplate(&b, "createSchema", data); err != nil {
		return err
	}

	return c.execTx(func(tx *sql.Tx) error {
		stmt := b.String()
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("error creating schema: %s\n%s", err, stmt)
		}
		return nil
	})
}

func (c *Client) createTable(schemaName, tableName string, tableSchema *Schema) error {
	var columns []string

	for _, f := range tableSchema.Fields {
		var col string

		if f.Unique {
			col = "%s %s unique"
		} else if !f.Nullable {
			col = "%s %s not null"
		} else {
			col = "%s %s"
		}

		name := cleanFieldName(f.Name)
		columns = append(columns, fmt.Sprintf(col, pq.QuoteIdentifier(name), f.Type))
	}

	sort.Strings(columns)

	data := &tableData{
		Schema:  schemaName,
		Table:   tableName,
		Columns: strings.Join(columns, ","),
	}

	return c.execTx(func(tx *sql.Tx) error {
		tmplName := "createTable"
		if tableSchema.Cstore {
			tmplName = "createCstoreTable"
		}

		var b bytes.Buffer
		if err := sqlTmpl.ExecuteTemplate(&b, tmplName, data); err != nil {
			return err
		}

		stmt := b.String()
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("error creating table: %s\n%s", err, stmt)
		}
		return nil
	})
}

func (c *Client) renameTable(schemaName, tempTableName, tableName string) error {
	data := &tableData{
		Schema:    schemaName,
		TempTable: tempTableName,
		Table:     tableName,
	}

	tmpls := []string{"dropTable", "renameTable"}

	var b bytes.Buffer
	return c.execTx(func(tx *sql.Tx) error {
		for _, name := range tmpls {
			b.Reset()
			if err := sqlTmpl.ExecuteTemplate(&b, name, data); err != nil {
				return err
			}
			if _, err := tx.Exec(b.String()); err != nil {
				return fmt.Errorf("error renaming table: %s", err)
			}
		}
		return nil
	})
}

func (c *Client) analyzeTable(schemaName, tableName string) error {
	return c.execTx(func(tx *sql.Tx) error {
		data := &tableData{Schema: schemaName, Table: tableName}

		var b bytes.Buffer
		if err := sqlTmpl.ExecuteTemplate(&b, "analyzeTable", data); err != nil {
			return err
		}

		stmt := b.String()
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("error analyzing table: %s\n%s", err, stmt)
		}
		return nil
	})
}

// copyData streams in through a fresh encoding/csv reader rather than
// the profiling pass's own reader, replaying the same file a second
// time (§1's "two-pass" shape: infer, then load). Every empty field is
// sent as SQL NULL rather than empty text, whatever the column's
// nullability.
func (c *Client) copyData(schemaName, tableName string, tableSchema *Schema, in io.Reader) (int64, error) {
	cr := csv.NewReader(in)

	columns, err := cr.Read()
	if err != nil {
		return 0, err
	}

	for i, col := range columns {
		columns[i] = cleanFieldName(col)
	}

	var n int64

	err = c.execTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(pq.CopyInSchema(schemaName, tableName, columns...))
		if err != nil {
			return fmt.Errorf("error preparing copy: %s", err)
		}

		cargs := make([]interface{}, len(columns))

		for {
			row, err := cr.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return fmt.Errorf("error reading record: %s", err)
			}

			for i, v := range row {
				if v == "" {
					cargs[i] = nil
				} else {
					cargs[i] = v
				}
			}

			if _, err := stmt.Exec(cargs...); err != nil {
				return fmt.Errorf("error sending row: %s", err)
			}

			n++
		}

		if _, err := stmt.Exec(); err != nil {
			return fmt.Errorf("error executing copy: %s", err)
		}

		return nil
	})

	if err != nil {
		return 0, err
	}

	return n, nil
}

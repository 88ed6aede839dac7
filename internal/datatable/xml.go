package datatable

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	documentElement = "DocumentElement"
	schemaNamespace = "http://www.w3.org/2001/XMLSchema"
)

// ReadXML decodes a table written in the DataTable layout:
//
//	<DocumentElement>
//	  <Materials><Name>Steel</Name><Standard>GOST 380</Standard></Materials>
//	</DocumentElement>
//
// Columns are taken in order of first appearance. An inline schema is skipped.
// When tableName is empty the row element name is used.
func ReadXML(r io.Reader, tableName string) (*Table, error) {
	d := xml.NewDecoder(r)
	t := New(tableName)

	var (
		depth   int
		row     map[string]string
		column  string
		text    strings.Builder
		rowName string
	)
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("datatable.ReadXML: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Space == schemaNamespace {
				if err := d.Skip(); err != nil {
					return nil, fmt.Errorf("datatable.ReadXML: skipping schema: %w", err)
				}
				continue
			}
			depth++
			switch depth {
			case 2:
				row = make(map[string]string)
				if rowName == "" {
					rowName = decodeName(el.Name.Local)
				}
			case 3:
				column = decodeName(el.Name.Local)
				text.Reset()
			}
		case xml.CharData:
			if depth == 3 {
				text.Write(el)
			}
		case xml.EndElement:
			switch depth {
			case 3:
				if !containsColumn(t.Columns, column) {
					t.AddColumn(column)
				}
				row[column] = text.String()
			case 2:
				values := make([]string, len(t.Columns))
				for i, c := range t.Columns {
					values[i] = row[c]
				}
				t.AppendRow(values...)
				row = nil
			}
			depth--
		}
	}

	if t.Name == "" {
		t.Name = rowName
	}
	return t, nil
}

// WriteXML encodes t in the DataTable layout. Every cell is written, empty or not.
// Column names must pass Table.Validate, since ReadXML merges columns by name.
func WriteXML(w io.Writer, t *Table) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("datatable.WriteXML: %w", err)
	}
	name := t.Name
	if name == "" {
		name = DefaultName
	}
	rowElement := xml.StartElement{Name: xml.Name{Local: encodeName(name)}}
	columns := make([]xml.Name, len(t.Columns))
	for i, c := range t.Columns {
		columns[i] = xml.Name{Local: encodeName(c)}
	}

	if _, err := io.WriteString(w, `<?xml version="1.0" standalone="yes"?>`+"\n"); err != nil {
		return fmt.Errorf("datatable.WriteXML: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	root := xml.StartElement{Name: xml.Name{Local: documentElement}}
	if err := enc.EncodeToken(root); err != nil {
		return fmt.Errorf("datatable.WriteXML: %w", err)
	}
	for _, row := range t.Rows {
		if err := enc.EncodeToken(rowElement); err != nil {
			return fmt.Errorf("datatable.WriteXML: %w", err)
		}
		for i, col := range columns {
			var value string
			if i < len(row) {
				value = row[i]
			}
			if err := enc.EncodeElement(value, xml.StartElement{Name: col}); err != nil {
				return fmt.Errorf("datatable.WriteXML: column %s: %w", t.Columns[i], err)
			}
		}
		if err := enc.EncodeToken(rowElement.End()); err != nil {
			return fmt.Errorf("datatable.WriteXML: %w", err)
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return fmt.Errorf("datatable.WriteXML: %w", err)
	}
	return enc.Flush()
}

// ReadFile loads a table from disk. A missing file yields an empty table and no error.
func ReadFile(path, tableName string) (*Table, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(tableName), nil
	}
	if err != nil {
		return nil, fmt.Errorf("datatable.ReadFile: %w", err)
	}
	defer func() { _ = f.Close() }()

	t, err := ReadXML(f, tableName)
	if err != nil {
		return nil, fmt.Errorf("datatable.ReadFile %s: %w", filepath.Base(path), err)
	}
	return t, nil
}

// WriteFile saves a table to disk, replacing the file atomically.
func WriteFile(path string, t *Table) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("datatable.WriteFile: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := WriteXML(tmp, t); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("datatable.WriteFile: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("datatable.WriteFile: %w", err)
	}
	return nil
}

func containsColumn(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}

// encodeName escapes characters that are not valid in an XML name as _xHHHH_,
// the escaping used by DataTable column names.
func encodeName(name string) string {
	if name == "" {
		return name
	}
	var b strings.Builder
	for i, r := range name {
		valid := r == '_' || unicode.IsLetter(r)
		if i > 0 {
			valid = valid || r == '-' || r == '.' || unicode.IsDigit(r)
		}
		if r == '_' && strings.HasPrefix(name[i:], "_x") {
			valid = false
		}
		if valid {
			b.WriteRune(r)
			continue
		}
		fmt.Fprintf(&b, "_x%04X_", r)
	}
	return b.String()
}

func decodeName(name string) string {
	if !strings.Contains(name, "_x") {
		return name
	}
	var b strings.Builder
	for i := 0; i < len(name); {
		if strings.HasPrefix(name[i:], "_x") && len(name) >= i+7 && name[i+6] == '_' {
			if code, err := strconv.ParseUint(name[i+2:i+6], 16, 32); err == nil {
				b.WriteRune(rune(code))
				i += 7
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(name[i:])
		b.WriteRune(r)
		i += size
	}
	return b.String()
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx reads the tables of a Word (.docx) document as rows of
// cleaned cell text.
//
// A .docx file is a zip archive; the body lives in word/document.xml as
// WordprocessingML. Only table structure (w:tbl, w:tr, w:tc) and run text
// (w:t, w:tab, w:br) are interpreted; styling is ignored.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/nhis-import/internal/textnorm"
)

const documentPart = "word/document.xml"

// ErrNoDocument indicates the archive has no word/document.xml part.
var ErrNoDocument = errors.New("docx: archive has no " + documentPart)

// Table is one document table. Each row holds the cleaned text of its cells
// in column order. Merged cells appear once.
type Table struct {
	Rows [][]string
}

// Reader yields the tables of a document. The tariff stage depends on this
// interface so tests can supply tables without building a .docx.
type Reader interface {
	Tables(path string) ([]Table, error)
}

// FileReader reads tables from .docx files on disk.
type FileReader struct{}

// Tables opens the .docx at path and returns its tables in document order.
func (FileReader) Tables(path string) ([]Table, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != documentPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s in %s: %w", documentPart, path, err)
		}
		defer rc.Close()

		tables, err := ParseDocument(rc)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return tables, nil
	}
	return nil, fmt.Errorf("%s: %w", path, ErrNoDocument)
}

// openTable tracks one table being decoded. Tables nest (a cell may hold a
// table), so the decoder keeps a stack of these.
type openTable struct {
	index  int // slot in the output slice, reserved at <w:tbl> to keep document order
	row    []string
	inRow  bool
	cell   strings.Builder
	inCell bool
	paras  int // paragraphs seen in the current cell
}

// ParseDocument decodes WordprocessingML and returns every table, nested
// tables included, in the order their start tags appear.
func ParseDocument(r io.Reader) ([]Table, error) {
	dec := xml.NewDecoder(r)

	var (
		tables []Table
		stack  []*openTable
		inText bool
	)
	top := func() *openTable {
		if len(stack) == 0 {
			return nil
		}
		return stack[len(stack)-1]
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding document xml: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			t := top()
			switch el.Name.Local {
			case "tbl":
				tables = append(tables, Table{})
				stack = append(stack, &openTable{index: len(tables) - 1})
			case "tr":
				if t != nil {
					t.row = nil
					t.inRow = true
				}
			case "tc":
				if t != nil && t.inRow {
					t.cell.Reset()
					t.inCell = true
					t.paras = 0
				}
			case "p":
				if t != nil && t.inCell {
					if t.paras > 0 {
						t.cell.WriteByte(' ')
					}
					t.paras++
				}
			case "t":
				inText = true
			case "tab", "br", "cr":
				if t != nil && t.inCell {
					t.cell.WriteByte(' ')
				}
			}

		case xml.CharData:
			if t := top(); inText && t != nil && t.inCell {
				t.cell.Write(el)
			}

		case xml.EndElement:
			t := top()
			switch el.Name.Local {
			case "t":
				inText = false
			case "tc":
				if t != nil && t.inCell {
					t.row = append(t.row, textnorm.Clean(t.cell.String()))
					t.inCell = false
				}
			case "tr":
				if t != nil && t.inRow {
					tables[t.index].Rows = append(tables[t.index].Rows, t.row)
					t.inRow = false
				}
			case "tbl":
				if t != nil {
					stack = stack[:len(stack)-1]
				}
			}
		}
	}

	return tables, nil
}

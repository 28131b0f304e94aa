// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchrec

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// A Record is one result: a flat set of fields keyed by name. Build,
// run, and aux fields are normalized to strings in Keys; value fields
// are numeric measurements in Values.
type Record struct {
	Keys   map[string]string
	Values map[string]float64

	fileName string
	line     int
}

// Pos returns the file name and line number this Record was read
// from. For Records not read by a Reader, it returns "", 0.
func (r *Record) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// An UnknownFieldError reports a dataset field that is absent from
// the Registry. The load aborts on the first such field; there is no
// mode that skips unknown fields.
type UnknownFieldError struct {
	FileName string
	Line     int
	Field    string
}

func (e *UnknownFieldError) Error() string {
	if e.FileName == "" {
		return fmt.Sprintf("unknown field %q", e.Field)
	}
	return fmt.Sprintf("%s:%d: unknown field %q", e.FileName, e.Line, e.Field)
}

// A SyntaxError reports a malformed line of a result file.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// A Reader reads newline-delimited JSON result records. Its API is
// modeled on bufio.Scanner: Scan advances to the next record, Record
// returns it, and Err reports the first error encountered.
//
// Every field of every record is validated against the Registry as it
// is read, and normalized:
//
//   - value-kind fields must be numbers and are kept as float64;
//   - an array of numbers (a per-operation rate vector) becomes a
//     single colon-joined string, preserving element order;
//   - free-text strings are trimmed of surrounding whitespace;
//   - other scalars are rendered to canonical strings.
type Reader struct {
	s        *bufio.Scanner
	reg      Registry
	fileName string
	line     int
	rec      *Record
	err      error
}

// NewReader constructs a Reader parsing records from r. fileName is
// used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string, reg Registry) *Reader {
	if fileName == "" {
		fileName = "<unknown>"
	}
	return &Reader{s: bufio.NewScanner(r), reg: reg, fileName: fileName}
}

// Scan advances to the next record, skipping blank lines. It returns
// false at end of input or on the first error, which Err reports.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	for r.s.Scan() {
		r.line++
		line := bytes.TrimSpace(r.s.Bytes())
		if len(line) == 0 {
			continue
		}
		rec, err := r.parse(line)
		if err != nil {
			r.err = err
			return false
		}
		r.rec = rec
		return true
	}
	r.err = r.s.Err()
	return false
}

// Record returns the record produced by the latest call to Scan.
func (r *Reader) Record() *Record {
	return r.rec
}

// Err returns the first error encountered by the Reader, or nil.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) parse(line []byte) (*Record, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(line, &raw); err != nil {
		return nil, &SyntaxError{r.fileName, r.line, err.Error()}
	}
	rec := &Record{
		Keys:     make(map[string]string),
		Values:   make(map[string]float64),
		fileName: r.fileName,
		line:     r.line,
	}
	for name, v := range raw {
		kind, ok := r.reg.Kind(name)
		if !ok {
			return nil, &UnknownFieldError{r.fileName, r.line, name}
		}
		if kind == KindValue {
			num, ok := v.(float64)
			if !ok {
				return nil, &SyntaxError{r.fileName, r.line, fmt.Sprintf("field %q: got %T, want number", name, v)}
			}
			rec.Values[name] = num
			continue
		}
		s, err := normalize(v)
		if err != nil {
			return nil, &SyntaxError{r.fileName, r.line, fmt.Sprintf("field %q: %v", name, err)}
		}
		rec.Keys[name] = s
	}
	return rec, nil
}

// normalize renders a non-value field to its canonical string form,
// which is what grouping keys compare.
func normalize(v interface{}) (string, error) {
	switch v := v.(type) {
	case string:
		return strings.TrimSpace(v), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case nil:
		return "", nil
	case []interface{}:
		// A rate vector: join the elements in order so the field
		// becomes a single groupable scalar.
		elems := make([]string, len(v))
		for i, e := range v {
			num, ok := e.(float64)
			if !ok {
				return "", fmt.Errorf("got array element %T, want number", e)
			}
			elems[i] = strconv.FormatFloat(num, 'g', -1, 64)
		}
		return strings.Join(elems, ":"), nil
	}
	return "", fmt.Errorf("unsupported value %v", v)
}

// ReadAll loads every record from the file at path. If any line is
// malformed or mentions an unregistered field, ReadAll returns no
// records.
func ReadAll(path string, reg Registry) ([]*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := NewReader(f, path, reg)
	var recs []*Record
	for r.Scan() {
		recs = append(recs, r.Record())
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

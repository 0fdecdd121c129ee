package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

// CountRows returns the number of data records in a CSV parameter table.
// The first record is the header and is not counted. Blank lines are skipped,
// short records are accepted (missing trailing fields) and stray quotes inside
// unquoted fields are kept as data. A record with more fields than the header
// is malformed.
func CountRows(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, &SubmitError{Kind: InputError, Op: "read params", Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = true
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return 0, inputErrorf("read params", errors.New("no header row"), "parse %s", path)
		}
		return 0, inputErrorf("read params", err, "parse %s", path)
	}
	width := len(header)

	n := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, inputErrorf("read params", err, "parse %s", path)
		}
		if len(record) > width {
			line, _ := r.FieldPos(0)
			err := fmt.Errorf("record on line %d has %d fields, header has %d", line, len(record), width)
			return 0, inputErrorf("read params", err, "parse %s", path)
		}
		n++
	}
	return n, nil
}

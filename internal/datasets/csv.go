package datasets

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// ErrMalformedCSV is returned when a CSV file cannot be parsed as a dataset.
var ErrMalformedCSV = errors.New("malformed dataset CSV")

// LoadCSV loads a dataset from a CSV file.
//
// CSV Format:
//
//	x0,x1,...,label
//	0.51,-0.33,1
//	1.92,0.27,0
//
// The first row is a header and is skipped. Every row must have the same
// number of columns; the last one is the label.
func LoadCSV(filename string) (*Dataset, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV parses a dataset in the LoadCSV format from r.
func ReadCSV(r io.Reader) (*Dataset, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV")
	}
	if len(records) < 1 {
		return nil, errors.WithMessage(ErrMalformedCSV, "missing header")
	}

	width := len(records[0])
	if width < 2 {
		return nil, errors.WithMessagef(ErrMalformedCSV, "need at least one feature and a label, got %d columns", width)
	}

	// Skip header row
	records = records[1:]

	d := &Dataset{
		X: make([][]float64, len(records)),
		Y: make([]float64, len(records)),
	}
	for i, record := range records {
		// csv.Reader already enforces a constant field count.
		row := make([]float64, width-1)
		for j := range row {
			row[j], err = strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, errors.WithMessagef(ErrMalformedCSV, "row %d, column %d: %v", i+1, j+1, err)
			}
		}
		label, err := strconv.ParseFloat(record[width-1], 64)
		if err != nil {
			return nil, errors.WithMessagef(ErrMalformedCSV, "label at row %d: %v", i+1, err)
		}
		if label != 0 && label != 1 {
			return nil, errors.WithMessagef(ErrMalformedCSV, "label at row %d: %v is not 0 or 1", i+1, record[width-1])
		}
		d.X[i] = row
		d.Y[i] = label
	}
	return d, nil
}

// SaveCSV writes d to filename in the LoadCSV format.
func SaveCSV(filename string, d *Dataset) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	if err := WriteCSV(file, d); err != nil {
		_ = file.Close()
		return err
	}
	return errors.Wrap(file.Close(), "failed to close file")
}

// WriteCSV writes d to w with a header row x0,x1,...,label.
func WriteCSV(w io.Writer, d *Dataset) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, d.Features()+1)
	for j, nf := 0, d.Features(); j < nf; j++ {
		header = append(header, "x"+strconv.Itoa(j))
	}
	header = append(header, "label")
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "failed to write header")
	}

	for i, row := range d.X {
		record := make([]string, 0, len(row)+1)
		for _, x := range row {
			record = append(record, strconv.FormatFloat(x, 'g', -1, 64))
		}
		record = append(record, strconv.FormatFloat(d.Y[i], 'g', -1, 64))
		if err := cw.Write(record); err != nil {
			return errors.Wrapf(err, "failed to write row %d", i+1)
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "failed to flush CSV")
}

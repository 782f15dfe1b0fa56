package process

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultSeparator is the field separator used for saved price paths
const DefaultSeparator = ":"

// SaveSeries writes series to filename, one price per line
func SaveSeries(filename string, series []float64) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("saveSeries: could not create file: %w", err)
	}
	defer file.Close()

	return WriteSeries(file, series)
}

// WriteSeries writes series to w, one price per line
func WriteSeries(w io.Writer, series []float64) error {
	for _, price := range series {
		line := strconv.FormatFloat(price, 'g', -1, 64)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("writeSeries: %w", err)
		}
	}
	return nil
}

// LoadSeries reads a price path from filename. Lines are split on sep
// and every field is parsed as a price, so files written with a single
// column and files holding several delimited columns can both be read.
func LoadSeries(filename, sep string) ([]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loadSeries: could not open file: %w", err)
	}
	defer file.Close()

	return ReadSeries(file, sep)
}

// ReadSeries reads a price path from r, see LoadSeries
func ReadSeries(r io.Reader, sep string) ([]float64, error) {
	comma, size := utf8.DecodeRuneInString(sep)
	if size == 0 || size != len(sep) {
		return nil, fmt.Errorf("readSeries: separator %q must be a single "+
			"character", sep)
	}

	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var series []float64
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("readSeries: %w", err)
		}

		for _, field := range record {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			price, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("readSeries: %w", err)
			}
			series = append(series, price)
		}
	}
	return series, nil
}

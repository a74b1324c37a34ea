package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadQueryFile reads a headerless CSV file and returns one Query per
// non-blank row. Only the first column of a row is used.
func ReadQueryFile(filename string) ([]Query, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	defer file.Close()

	queries, err := ReadQueries(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse input file %s: %w", filename, err)
	}
	return queries, nil
}

// ReadQueries parses queries from any CSV stream
func ReadQueries(r io.Reader) ([]Query, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var queries []Query
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		if len(record) == 0 {
			continue
		}
		line := strings.TrimPrefix(record[0], "\ufeff")
		if strings.TrimSpace(line) == "" {
			continue
		}

		queries = append(queries, ParseQuery(line))
	}

	return queries, nil
}

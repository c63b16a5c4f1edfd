package results

import (
	"encoding/json"
	"fmt"
	"io"
)

// Decode reads a result document: a JSON array of records.
func Decode(r io.Reader, year string) (*Dataset, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding %s results: %w", year, err)
	}
	return &Dataset{Year: year, Records: records}, nil
}

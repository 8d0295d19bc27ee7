// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/danielhkuo/quickly-tally/models"
)

// LoadResults reads an exported results file ({"responses": [...]}).
func LoadResults(path string) ([]models.ResponseRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read survey results: %w", err)
	}
	return ParseResults(data)
}

// ParseResults decodes a results document. Records without a label get
// "Respondent N", N being their 1-based position.
func ParseResults(data []byte) ([]models.ResponseRecord, error) {
	var file struct {
		Responses *[]models.ResponseRecord `json:"responses"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResults, err)
	}
	if file.Responses == nil {
		return nil, fmt.Errorf("%w: missing responses array", ErrInvalidResults)
	}

	records := *file.Responses
	for i := range records {
		if records[i].Label == "" {
			records[i].Label = "Respondent " + strconv.Itoa(i+1)
		}
		if records[i].Responses == nil {
			records[i].Responses = map[string]models.Answer{}
		}
	}
	return records, nil
}

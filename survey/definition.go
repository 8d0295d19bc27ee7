// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/quickly-tally/models"
)

var (
	ErrInvalidDefinition = errors.New("invalid survey definition")
	ErrInvalidResults    = errors.New("invalid survey results")
)

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New()

type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFor picks the definition format from a file extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadDefinition reads and validates a survey definition file.
func LoadDefinition(path string) (models.Survey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Survey{}, fmt.Errorf("failed to read survey definition: %w", err)
	}
	return ParseDefinition(data, FormatFor(path))
}

// ParseDefinition decodes and validates a survey definition. Fields the
// service does not use (UI hints, required flags) are ignored.
func ParseDefinition(data []byte, format Format) (models.Survey, error) {
	var s models.Survey
	var err error
	switch format {
	case FormatYAML:
		err = yaml.NewDecoder(bytes.NewReader(data)).Decode(&s)
	default:
		err = json.Unmarshal(data, &s)
	}
	if err != nil {
		return models.Survey{}, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	if err := Validate(s); err != nil {
		return models.Survey{}, err
	}
	return s, nil
}

// Validate checks struct tags and the rules tags cannot express: unique
// step and question IDs and unique option values per question.
func Validate(s models.Survey) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}

	steps := make(map[string]struct{}, len(s.Steps))
	questions := make(map[string]string)
	for _, step := range s.Steps {
		if _, dup := steps[step.ID]; dup {
			return fmt.Errorf("%w: duplicate step ID %q", ErrInvalidDefinition, step.ID)
		}
		steps[step.ID] = struct{}{}

		for _, q := range step.Questions {
			if other, dup := questions[q.ID]; dup {
				return fmt.Errorf("%w: duplicate question ID %q (already in step %s)", ErrInvalidDefinition, q.ID, other)
			}
			questions[q.ID] = step.ID

			if err := uniqueOptions(q.Options); err != nil {
				return fmt.Errorf("%w: question %s: %v", ErrInvalidDefinition, q.ID, err)
			}
			if q.RankOptions != nil {
				if err := uniqueOptions(q.RankOptions.Options); err != nil {
					return fmt.Errorf("%w: question %s rank options: %v", ErrInvalidDefinition, q.ID, err)
				}
			}
		}
	}
	return nil
}

func uniqueOptions(options []models.Option) error {
	seen := make(map[string]struct{}, len(options))
	for _, opt := range options {
		if _, dup := seen[opt.Value]; dup {
			return fmt.Errorf("duplicate option value %q", opt.Value)
		}
		seen[opt.Value] = struct{}{}
	}
	return nil
}

package avro

import (
	"fmt"

	"github.com/agnivade/levenshtein"
)

// MissingRequiredFieldError is returned by the read-plan builder when an
// expected field has no reader in the writer schema, no constant, and no
// default (spec §7.2).
type MissingRequiredFieldError struct {
	FieldID    int
	FieldName  string
	Suggestion string
}

func (e *MissingRequiredFieldError) Error() string {
	if e.Suggestion == "" {
		return fmt.Sprintf("missing required field %q (id %d)", e.FieldName, e.FieldID)
	}
	return fmt.Sprintf("missing required field %q (id %d) (did you mean %q?)", e.FieldName, e.FieldID, e.Suggestion)
}

// newMissingRequiredFieldError picks the writer field whose name is
// closest (by Levenshtein distance) to fieldName as a suggestion, so long
// as it's a plausible typo (distance no more than a third of the name's
// length, and at least one character).
func newMissingRequiredFieldError(fieldID int, fieldName string, writerFields []AvroField) *MissingRequiredFieldError {
	best := ""
	bestDist := -1
	for _, wf := range writerFields {
		d := levenshtein.ComputeDistance(fieldName, wf.Name)
		if bestDist == -1 || d < bestDist {
			bestDist = d
			best = wf.Name
		}
	}
	threshold := len(fieldName) / 3
	if threshold < 1 {
		threshold = 1
	}
	suggestion := ""
	if bestDist >= 0 && bestDist <= threshold && best != fieldName {
		suggestion = best
	}
	return &MissingRequiredFieldError{FieldID: fieldID, FieldName: fieldName, Suggestion: suggestion}
}

// InvalidDecimalEncodingError is returned when a decimal reader is built
// over an Avro physical type that is neither FIXED nor BYTES (spec §7.3).
type InvalidDecimalEncodingError struct {
	SchemaType string
}

func (e *InvalidDecimalEncodingError) Error() string {
	return fmt.Sprintf("invalid primitive type for decimal: %s", e.SchemaType)
}

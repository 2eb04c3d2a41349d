package core

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeRecord parses a stored record. Anything that is not a JSON object
// yields ErrCorruptRecord.
func DecodeRecord(raw string) (*Record, error) {
	b := bytes.TrimSpace([]byte(raw))
	if len(b) == 0 || b[0] != '{' {
		return nil, fmt.Errorf("%w: not a JSON object", ErrCorruptRecord)
	}
	var r Record
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	r.Normalize()
	return &r, nil
}

// EncodeRecord serializes the complete record.
func EncodeRecord(r *Record) (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encode record %q: %w", r.Name, err)
	}
	return string(b), nil
}

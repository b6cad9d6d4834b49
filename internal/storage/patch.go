package storage

import (
	"encoding/json"
	"fmt"
)

// Patch is a partial update keyed by JSON field name. Keys that do not name a
// field of the target record are ignored.
type Patch map[string]json.RawMessage

// Without returns a copy of p lacking the given keys.
func (p Patch) Without(keys ...string) Patch {
	out := make(Patch, len(p))
	for k, v := range p {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// NewPatch builds a patch from a JSON-serialisable value, typically a DTO whose
// unset fields are tagged omitempty.
func NewPatch(v any) (Patch, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	var p Patch
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	return p, nil
}

// Merge applies patch onto a copy of current with shallow JSON merge semantics.
// The id field is never overwritten. Fields hidden from JSON come back zeroed;
// callers restore them.
func Merge[T any](current *T, patch Patch) (*T, error) {
	raw, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	for k, v := range patch {
		if k == "id" {
			continue
		}
		fields[k] = v
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}

	var out T
	if err := json.Unmarshal(merged, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	return &out, nil
}

package domain

import (
	"encoding/json"
	"fmt"
)

// SkinTypeSet is an unordered set of skin types. Membership tests are the
// only operation the rest of the system performs on it.
type SkinTypeSet []SkinType

// Contains reports whether the set contains the given skin type.
func (s SkinTypeSet) Contains(t SkinType) bool {
	for _, v := range s {
		if v == t {
			return true
		}
	}
	return false
}

// UnmarshalJSON accepts either a JSON array of strings or a JSON string that
// itself encodes an array. The source dataset stores set-valued fields in
// both shapes, so they are canonicalized here at ingestion time.
func (s *SkinTypeSet) UnmarshalJSON(data []byte) error {
	values, err := decodeFlexibleList(data)
	if err != nil {
		return fmt.Errorf("skin type set: %w", err)
	}
	out := make(SkinTypeSet, 0, len(values))
	for _, v := range values {
		out = append(out, SkinType(v))
	}
	*s = out
	return nil
}

// ConcernSet is an unordered set of skin concerns.
type ConcernSet []Concern

// Contains reports whether the set contains the given concern.
func (s ConcernSet) Contains(c Concern) bool {
	for _, v := range s {
		if v == c {
			return true
		}
	}
	return false
}

// Intersects reports whether the two sets share at least one concern.
func (s ConcernSet) Intersects(other ConcernSet) bool {
	for _, v := range other {
		if s.Contains(v) {
			return true
		}
	}
	return false
}

// Union returns the union of the two sets. Duplicates are removed; the
// result order is not significant.
func (s ConcernSet) Union(other ConcernSet) ConcernSet {
	out := make(ConcernSet, 0, len(s)+len(other))
	out = append(out, s...)
	for _, v := range other {
		if !out.Contains(v) {
			out = append(out, v)
		}
	}
	return out
}

// UnmarshalJSON accepts either a JSON array of strings or a JSON string that
// itself encodes an array (see SkinTypeSet.UnmarshalJSON).
func (s *ConcernSet) UnmarshalJSON(data []byte) error {
	values, err := decodeFlexibleList(data)
	if err != nil {
		return fmt.Errorf("concern set: %w", err)
	}
	out := make(ConcernSet, 0, len(values))
	for _, v := range values {
		out = append(out, Concern(v))
	}
	*s = out
	return nil
}

// decodeFlexibleList decodes a string list stored either as a native JSON
// array or as a JSON-encoded array string. null and "" decode to an empty
// list.
func decodeFlexibleList(data []byte) ([]string, error) {
	if string(data) == "null" {
		return nil, nil
	}

	var direct []string
	if err := json.Unmarshal(data, &direct); err == nil {
		return direct, nil
	}

	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return nil, fmt.Errorf("expected array or encoded array string, got %s", string(data))
	}
	if encoded == "" {
		return nil, nil
	}

	var inner []string
	if err := json.Unmarshal([]byte(encoded), &inner); err != nil {
		return nil, fmt.Errorf("decode encoded array %q: %w", encoded, err)
	}
	return inner, nil
}

package wizard

import (
	"encoding/json"
	"maps"
	"strconv"
)

// Values holds the fields of one step. Values are string, bool, []string or
// FileRef.
type Values map[string]any

// String returns the named value as a string, or "" when absent or not a string.
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// File returns the named value as a FileRef.
func (v Values) File(name string) FileRef {
	f, _ := v[name].(FileRef)
	return f
}

func (v Values) clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		if list, ok := val.([]string); ok {
			val = append([]string(nil), list...)
		}
		out[k] = val
	}
	return out
}

// FormData is the step-indexed document a wizard accumulates.
type FormData struct {
	Steps     map[StepKey]Values `json:"steps"`
	Directors []Director         `json:"directors,omitempty"`
}

// NewFormData returns the empty document for s. Types with directors start
// with a single default director.
func NewFormData(s *Schema) FormData {
	fd := FormData{Steps: make(map[StepKey]Values, len(s.Steps))}
	for _, st := range s.Steps {
		fd.Steps[st.Key] = Values{}
	}
	if s.HasDirectors() {
		fd.Directors = ResizeDirectors(DefaultDirectorCount, nil)
	}
	return fd
}

// Clone returns a copy that shares nothing mutable with fd.
func (fd FormData) Clone() FormData {
	out := FormData{Steps: make(map[StepKey]Values, len(fd.Steps))}
	for k, v := range fd.Steps {
		out.Steps[k] = v.clone()
	}
	if fd.Directors != nil {
		out.Directors = append([]Director(nil), fd.Directors...)
	}
	return out
}

// Step returns the values of key, never nil.
func (fd FormData) Step(key StepKey) Values {
	if v, ok := fd.Steps[key]; ok && v != nil {
		return v
	}
	return Values{}
}

// Document renders the step-indexed object with directors placed under
// their host step.
func (fd FormData) Document(s *Schema) map[string]map[string]any {
	doc := make(map[string]map[string]any, len(fd.Steps))
	for k, v := range fd.Steps {
		doc[string(k)] = maps.Clone(map[string]any(v))
	}
	if s.HasDirectors() {
		host := doc[string(s.DirectorsStep)]
		if host == nil {
			host = map[string]any{}
			doc[string(s.DirectorsStep)] = host
		}
		host[DirectorsField] = fd.Directors
	}
	return doc
}

// UnmarshalJSON restores typed values (FileRef, []string) from the generic
// JSON decoding.
func (fd *FormData) UnmarshalJSON(b []byte) error {
	var raw struct {
		Steps     map[StepKey]map[string]any `json:"steps"`
		Directors []Director                 `json:"directors"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	fd.Steps = make(map[StepKey]Values, len(raw.Steps))
	for k, fields := range raw.Steps {
		vals := make(Values, len(fields))
		for name, v := range fields {
			nv, err := normalize(v)
			if err != nil {
				return err
			}
			vals[name] = nv
		}
		fd.Steps[k] = vals
	}
	fd.Directors = raw.Directors
	return nil
}

// normalize maps a decoded JSON value onto the value types Values holds.
func normalize(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string, bool, FileRef:
		return t, nil
	case []string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case json.Number:
		return t.String(), nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, ErrInvalidValue
			}
			out = append(out, s)
		}
		return out, nil
	case map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return nil, err
		}
		var ref FileRef
		if err := json.Unmarshal(b, &ref); err != nil {
			return nil, err
		}
		return ref, nil
	default:
		return nil, ErrInvalidValue
	}
}

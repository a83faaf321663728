package wizard

import (
	"fmt"
	"strconv"

	"filings/widget"
)

// Dispatch merges patch into one step and returns the new document. It is
// the only way step values change: the patch is validated against the
// schema, merged field by field, and the step's cross-field rules run on the
// result. On error fd is returned untouched.
func Dispatch(s *Schema, fd FormData, step StepKey, patch map[string]any) (FormData, error) {
	st, ok := s.Step(step)
	if !ok {
		return fd, fmt.Errorf("%w: %s", ErrUnknownStep, step)
	}
	clean := make(Values, len(patch))
	for name, raw := range patch {
		def, ok := st.Field(name)
		if !ok {
			return fd, fmt.Errorf("%w: %s.%s", ErrUnknownField, step, name)
		}
		v, err := coerce(def, raw)
		if err != nil {
			return fd, err
		}
		if ref, isFile := v.(FileRef); isFile && !ref.IsEmpty() {
			return fd, fmt.Errorf("%w: %s is set through file upload", ErrInvalidValue, name)
		}
		clean[name] = v
	}
	return apply(s, fd, st, clean)
}

// CheckFileField reports whether name is a file field of step that is
// currently shown, so a file can be stored in it.
func CheckFileField(s *Schema, fd FormData, step StepKey, name string) error {
	st, ok := s.Step(step)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStep, step)
	}
	def, ok := st.Field(name)
	if !ok || def.Kind != KindFile {
		return fmt.Errorf("%w: %s.%s is not a file field", ErrUnknownField, step, name)
	}
	if !visible(def, fd.Step(step)) {
		return fmt.Errorf("%w: %s.%s is hidden", ErrInvalidValue, step, name)
	}
	return nil
}

// SetFile stores ref in a file field of a step.
func SetFile(s *Schema, fd FormData, step StepKey, name string, ref FileRef) (FormData, error) {
	if err := CheckFileField(s, fd, step, name); err != nil {
		return fd, err
	}
	st, _ := s.Step(step)
	return apply(s, fd, st, Values{name: ref})
}

// ToggleOption flips one option of a multiselect field.
func ToggleOption(s *Schema, fd FormData, step StepKey, name, option string) (FormData, error) {
	st, ok := s.Step(step)
	if !ok {
		return fd, fmt.Errorf("%w: %s", ErrUnknownStep, step)
	}
	def, ok := st.Field(name)
	if !ok || def.Kind != KindMultiSelect {
		return fd, fmt.Errorf("%w: %s.%s is not a multiselect", ErrUnknownField, step, name)
	}
	if !widget.HasValue(def.Options, option) {
		return fd, fmt.Errorf("%w: %s has no option %q", ErrInvalidValue, name, option)
	}
	current, _ := fd.Step(step)[name].([]string)
	return apply(s, fd, st, Values{name: widget.ToggleValue(current, option)})
}

func apply(s *Schema, fd FormData, st Step, patch Values) (FormData, error) {
	next := fd.Clone()
	merged := next.Step(st.Key).clone()
	for k, v := range patch {
		merged[k] = v
	}

	for name, v := range patch {
		def, _ := st.Field(name)
		if !isBlank(v) && !visible(def, merged) {
			return fd, fmt.Errorf("%w: %s.%s is hidden", ErrInvalidValue, st.Key, name)
		}
	}

	if rule := s.Capital; rule != nil && rule.Step == st.Key {
		_, paidUp := patch[rule.PaidUp]
		_, authorized := patch[rule.Authorized]
		if paidUp || authorized {
			if parseAmount(merged.String(rule.PaidUp)) > parseAmount(merged.String(rule.Authorized)) {
				return fd, ErrPaidUpExceedsAuthorized
			}
		}
	}

	if s.HasDirectors() && st.Key == "step1" {
		if raw, touched := patch[CountField]; touched {
			n := DefaultDirectorCount
			if str, _ := raw.(string); str != "" {
				n, _ = strconv.Atoi(str)
			}
			if n < 1 || n > MaxDirectors {
				return fd, fmt.Errorf("%w: %s must be between 1 and %d", ErrInvalidValue, CountField, MaxDirectors)
			}
			next.Directors = ResizeDirectors(n, next.Directors)
		}
	}

	pruneHidden(st.Fields, merged)
	next.Steps[st.Key] = merged
	return next, nil
}

// pruneHidden drops values of fields whose visibility condition is false.
func pruneHidden(defs []FieldDef, vals Values) {
	for _, def := range defs {
		if !visible(def, vals) {
			delete(vals, def.Name)
		}
	}
}

func visible(def FieldDef, vals Values) bool {
	c := def.VisibleWhen
	return c == nil || vals.String(c.Field) == c.Equals
}

// VisibleFields lists the fields of a step currently shown.
func VisibleFields(s *Schema, fd FormData, step StepKey) []FieldDef {
	st, ok := s.Step(step)
	if !ok {
		return nil
	}
	vals := fd.Step(step)
	var out []FieldDef
	for _, def := range st.Fields {
		if visible(def, vals) {
			out = append(out, def)
		}
	}
	return out
}

// UpdateDirector merges patch into directors[index]. Setting the signatory
// flag to Yes clears it on the other directors in the same update.
func UpdateDirector(s *Schema, fd FormData, index int, patch map[string]any) (FormData, error) {
	if !s.HasDirectors() {
		return fd, ErrNoDirectors
	}
	if index < 0 || index >= len(fd.Directors) {
		return fd, fmt.Errorf("%w: %d", ErrDirectorIndex, index)
	}
	clean := make(Values, len(patch))
	for name, raw := range patch {
		def, ok := directorField(name)
		if !ok {
			return fd, fmt.Errorf("%w: directors.%s", ErrUnknownField, name)
		}
		v, err := coerce(def, raw)
		if err != nil {
			return fd, err
		}
		if ref, isFile := v.(FileRef); isFile && !ref.IsEmpty() {
			return fd, fmt.Errorf("%w: %s is set through file upload", ErrInvalidValue, name)
		}
		clean[name] = v
	}
	return applyDirector(fd, index, clean)
}

// CheckDirectorFileField is CheckFileField for directors[index].
func CheckDirectorFileField(s *Schema, fd FormData, index int, name string) error {
	if !s.HasDirectors() {
		return ErrNoDirectors
	}
	if index < 0 || index >= len(fd.Directors) {
		return fmt.Errorf("%w: %d", ErrDirectorIndex, index)
	}
	def, ok := directorField(name)
	if !ok || def.Kind != KindFile {
		return fmt.Errorf("%w: directors.%s is not a file field", ErrUnknownField, name)
	}
	if !visible(def, fd.Directors[index].values()) {
		return fmt.Errorf("%w: directors[%d].%s is hidden", ErrInvalidValue, index, name)
	}
	return nil
}

// SetDirectorFile stores ref in a file field of directors[index].
func SetDirectorFile(s *Schema, fd FormData, index int, name string, ref FileRef) (FormData, error) {
	if err := CheckDirectorFileField(s, fd, index, name); err != nil {
		return fd, err
	}
	return applyDirector(fd, index, Values{name: ref})
}

func applyDirector(fd FormData, index int, patch Values) (FormData, error) {
	next := fd.Clone()
	d := next.Directors[index]
	for name, v := range patch {
		if name == "isAuthorizedSignatory" {
			continue
		}
		d.set(name, v)
	}
	vals := d.values()
	for _, def := range DirectorFields {
		if visible(def, vals) {
			continue
		}
		if v, sent := patch[def.Name]; sent && !isBlank(v) {
			return fd, fmt.Errorf("%w: directors[%d].%s is hidden", ErrInvalidValue, index, def.Name)
		}
		d.set(def.Name, "")
	}
	next.Directors[index] = d

	if v, ok := patch["isAuthorizedSignatory"]; ok {
		flag, _ := v.(string)
		if flag == "" {
			flag = No
		}
		directors, err := SetAuthorizedSignatory(next.Directors, index, flag)
		if err != nil {
			return fd, err
		}
		next.Directors = directors
	}
	return next, nil
}

func directorField(name string) (FieldDef, bool) {
	return Step{Fields: DirectorFields}.Field(name)
}

// Missing lists required visible fields that are still blank, as
// "step.field" or "directors[i].field".
func Missing(s *Schema, fd FormData) []string {
	var out []string
	for _, st := range s.Steps {
		vals := fd.Step(st.Key)
		for _, def := range st.Fields {
			if def.Required && visible(def, vals) && isBlank(vals[def.Name]) {
				out = append(out, fmt.Sprintf("%s.%s", st.Key, def.Name))
			}
		}
	}
	if s.HasDirectors() {
		for i, d := range fd.Directors {
			vals := d.values()
			for _, def := range DirectorFields {
				if def.Required && visible(def, vals) && isBlank(vals[def.Name]) {
					out = append(out, fmt.Sprintf("directors[%d].%s", i, def.Name))
				}
			}
		}
	}
	return out
}

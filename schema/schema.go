// Package schema turns loosely typed records (decoded JSON, bridge maps) into
// typed, normalized structs.
//
// A Schema lists the fields it reads. Each field is normalized first (type
// coercion, trimming, case folding, digit stripping, defaults), the result is
// decoded into the target struct, and the struct's `validate` tags are
// checked. Every failing field is reported, in declaration order.
package schema

import (
	"sort"

	"github.com/mitchellh/mapstructure"
)

type Schema struct {
	fields []*Field
	order  map[string]int
}

func New(fields ...*Field) *Schema {
	s := &Schema{
		fields: fields,
		order:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		s.order[f.name] = i
	}
	return s
}

// Normalize applies the field rules to raw and returns the normalized record.
// Keys not declared in the schema are dropped.
func (s *Schema) Normalize(raw map[string]any) (map[string]any, Issues) {
	out := make(map[string]any, len(s.fields))
	var issues Issues
	for _, f := range s.fields {
		v, ok, issue := f.normalize(raw)
		if issue != nil {
			issues = append(issues, *issue)
			continue
		}
		if ok {
			out[f.name] = v
		}
	}
	return out, issues
}

// Decode normalizes raw into out (a pointer to a struct whose json tags name
// the schema fields) and validates it. extra issues found by the caller are
// merged in; fields they name are not re-checked.
//
// out is only meaningful when the returned Issues is empty.
func (s *Schema) Decode(raw map[string]any, out any, extra ...Issue) Issues {
	normalized, issues := s.Normalize(raw)
	issues = append(issues, extra...)

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  out,
	})
	if err != nil {
		return append(issues, Issue{Code: CodeInvalidFormat, Message: err.Error()})
	}
	if err := dec.Decode(normalized); err != nil {
		return s.sorted(append(issues, Issue{Code: CodeInvalidFormat, Message: err.Error()}))
	}

	for _, is := range issuesFromError(Validator().Struct(out)) {
		if issues.Has(root(is.Path)) {
			continue
		}
		issues = append(issues, is)
	}
	return s.sorted(issues)
}

func (s *Schema) sorted(issues Issues) Issues {
	if len(issues) == 0 {
		return nil
	}
	rank := func(i Issue) int {
		if r, ok := s.order[root(i.Path)]; ok {
			return r
		}
		return len(s.fields)
	}
	sort.SliceStable(issues, func(a, b int) bool {
		return rank(issues[a]) < rank(issues[b])
	})
	return issues
}

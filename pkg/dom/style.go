package dom

import (
	"slices"
	"strings"
)

type memStyle struct {
	owner *MemElement
	names []string
	value map[string]string
}

func (s *memStyle) CSSText() string {
	var sb strings.Builder
	for i, name := range s.names {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(s.value[name])
		sb.WriteString(";")
	}
	return sb.String()
}

func (s *memStyle) SetCSSText(value string) {
	s.names = nil
	s.value = nil
	for _, decl := range strings.Split(value, ";") {
		name, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		s.put(cssName(strings.TrimSpace(name)), strings.TrimSpace(v))
	}
	s.owner.doc.record(Mutation{Kind: MutationStyle, Target: s.owner, Value: value})
}

func (s *memStyle) Get(name string) string {
	return s.value[cssName(name)]
}

func (s *memStyle) Set(name, value string) {
	s.put(cssName(name), value)
	s.owner.doc.record(Mutation{Kind: MutationStyle, Target: s.owner, Name: name, Value: value})
}

func (s *memStyle) put(name, value string) {
	if name == "" {
		return
	}
	if value == "" {
		if i := slices.Index(s.names, name); i >= 0 {
			s.names = slices.Delete(s.names, i, i+1)
			delete(s.value, name)
		}
		return
	}
	if s.value == nil {
		s.value = make(map[string]string)
	}
	if _, ok := s.value[name]; !ok {
		s.names = append(s.names, name)
	}
	s.value[name] = value
}

// cssName converts a camel-cased style property to its hyphenated CSS name.
// Custom properties are left untouched.
func cssName(name string) string {
	if strings.HasPrefix(name, "--") {
		return name
	}
	var sb strings.Builder
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			sb.WriteByte('-')
			sb.WriteRune(r + ('a' - 'A'))
			continue
		}
		sb.WriteRune(r)
	}
	return strings.ToLower(sb.String())
}

// camelName converts a hyphenated CSS property name to its camel-cased form.
// Camel-cased names and custom properties are returned unchanged.
func camelName(name string) string {
	if strings.HasPrefix(name, "--") || !strings.Contains(name, "-") {
		return name
	}
	var sb strings.Builder
	upper := false
	for _, r := range name {
		if r == '-' {
			upper = sb.Len() > 0
			continue
		}
		if upper && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		upper = false
		sb.WriteRune(r)
	}
	return sb.String()
}

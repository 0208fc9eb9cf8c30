package dom

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/go-drift/vdom/pkg/errors"
)

// ErrReadOnlyProperty is returned when assigning a property the host does not
// allow to be written.
var ErrReadOnlyProperty = stderrors.New("read-only property")

type propKind int

const (
	// propString reflects to an attribute holding the stringified value.
	propString propKind = iota
	// propBool reflects to a boolean attribute (present or absent).
	propBool
	// propLive holds state that is not reflected to an attribute.
	propLive
	propReadOnly
)

type propSpec struct {
	attr string
	kind propKind
}

var globalProps = map[string]propSpec{
	"id":              {"id", propString},
	"title":           {"title", propString},
	"lang":            {"lang", propString},
	"dir":             {"dir", propString},
	"hidden":          {"hidden", propBool},
	"tabIndex":        {"tabindex", propString},
	"accessKey":       {"accesskey", propString},
	"draggable":       {"draggable", propString},
	"contentEditable": {"contenteditable", propString},
	"tagName":         {kind: propReadOnly},
	"nodeName":        {kind: propReadOnly},
	"className":       {"class", propString},
}

var tagProps = map[string]map[string]propSpec{
	"input": {
		"value":       {kind: propLive},
		"checked":     {kind: propLive},
		"disabled":    {"disabled", propBool},
		"name":        {"name", propString},
		"placeholder": {"placeholder", propString},
		"readOnly":    {"readonly", propBool},
		"required":    {"required", propBool},
		"autofocus":   {"autofocus", propBool},
		"multiple":    {"multiple", propBool},
		"min":         {"min", propString},
		"max":         {"max", propString},
		"step":        {"step", propString},
		"type":        {"type", propString},
		"list":        {kind: propReadOnly},
	},
	"textarea": {
		"value":       {kind: propLive},
		"disabled":    {"disabled", propBool},
		"name":        {"name", propString},
		"placeholder": {"placeholder", propString},
		"rows":        {"rows", propString},
		"cols":        {"cols", propString},
	},
	"select": {
		"value":    {kind: propLive},
		"disabled": {"disabled", propBool},
		"multiple": {"multiple", propBool},
		"name":     {"name", propString},
	},
	"option": {
		"value":    {"value", propString},
		"selected": {kind: propLive},
		"disabled": {"disabled", propBool},
	},
	"button": {
		"disabled": {"disabled", propBool},
		"name":     {"name", propString},
		"value":    {"value", propString},
		"type":     {"type", propString},
	},
	"a": {
		"href":   {"href", propString},
		"target": {"target", propString},
		"rel":    {"rel", propString},
	},
	"img": {
		"src":    {"src", propString},
		"alt":    {"alt", propString},
		"width":  {"width", propString},
		"height": {"height", propString},
	},
	"label": {
		"htmlFor": {"for", propString},
	},
	"form": {
		"action": {"action", propString},
		"method": {"method", propString},
	},
}

func (e *MemElement) propSpec(name string) (propSpec, bool) {
	if e.ns != HTMLNamespace {
		// Foreign elements only expose the global read-only names.
		spec, ok := globalProps[name]
		return spec, ok && spec.kind == propReadOnly
	}
	if specs, ok := tagProps[e.tag]; ok {
		if spec, ok := specs[name]; ok {
			return spec, true
		}
	}
	spec, ok := globalProps[name]
	return spec, ok
}

func (e *MemElement) HasProperty(name string) bool {
	_, ok := e.propSpec(name)
	return ok
}

func (e *MemElement) Property(name string) any {
	spec, ok := e.propSpec(name)
	if !ok {
		return nil
	}
	switch spec.kind {
	case propReadOnly:
		if name == "tagName" || name == "nodeName" {
			return strings.ToUpper(e.tag)
		}
		return nil
	case propBool:
		_, has := e.Attribute(spec.attr)
		return has
	case propLive:
		return e.live[name]
	default:
		v, _ := e.Attribute(spec.attr)
		return v
	}
}

// SetProperty assigns a property. Rejections are *errors.Error values of
// KindHost.
func (e *MemElement) SetProperty(name string, value any) error {
	spec, ok := e.propSpec(name)
	if !ok {
		return e.hostError(fmt.Errorf("%s has no property %q", e.tag, name))
	}
	switch spec.kind {
	case propReadOnly:
		return e.hostError(fmt.Errorf("%s.%s: %w", e.tag, name, ErrReadOnlyProperty))
	case propBool:
		if Truthy(value) {
			e.setAttr("", spec.attr, "")
		} else {
			e.removeAttr("", spec.attr)
		}
	case propLive:
		if e.live == nil {
			e.live = make(map[string]any)
		}
		e.live[name] = value
	default:
		e.setAttr("", spec.attr, stringify(value))
	}
	e.doc.record(Mutation{Kind: MutationProperty, Target: e, Name: name, Value: stringify(value)})
	return nil
}

func (e *MemElement) hostError(err error) error {
	return &errors.Error{Op: "dom.SetProperty", Kind: errors.KindHost, Err: err}
}

// Truthy mirrors the host's boolean coercion: nil, false, zero numbers, NaN
// and the empty string are false.
func Truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0 && v == v
	default:
		return true
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

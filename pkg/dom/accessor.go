package dom

import (
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"
)

// Special prop names.
const (
	KeyProp       = "key"
	RefProp       = "ref"
	ClassProp     = "class"
	ClassNameProp = "className"
	StyleProp     = "style"
	// InnerHTMLProp assigns raw markup as the element's content. Descendants
	// of an element carrying it are not reconciled.
	InnerHTMLProp = "dangerouslySetInnerHTML"
)

// Markup is the value of InnerHTMLProp.
type Markup struct {
	HTML string
}

// nonDimensional matches style properties whose numeric values are written
// without a unit (line-height, opacity, z-index, flex counts, zoom, order...).
var nonDimensional = regexp.MustCompile(`(?i)acit|ex(?:s|g|n|p|$)|rph|ows|mnc|ntw|ine[ch]|zoo|^ord`)

// Accessor applies single name/value changes to host elements.
//
// The zero value is not usable; create one with NewAccessor. An Accessor owns
// the stable proxy listener registered for every event handler it applies,
// so a node's handlers must always be applied through the same Accessor.
type Accessor struct {
	proxy *eventProxy
}

// NewAccessor returns an Accessor. transform, if not nil, is applied to every
// event before it reaches a handler; returning nil keeps the original event.
func NewAccessor(transform func(*Event) *Event) *Accessor {
	return &Accessor{proxy: &eventProxy{transform: transform}}
}

// Proxy returns the listener the Accessor registers with the host.
func (a *Accessor) Proxy() Listener {
	return a.proxy
}

// Set mutates node so that name reflects value, given that old was the
// previously applied value. isSVG selects namespaced attribute handling.
// A nil or false value removes. Calling Set twice with the same old and value
// leaves the node in the same observable state as calling it once.
func (a *Accessor) Set(node Element, name string, old, value any, isSVG bool) {
	if name == ClassNameProp {
		name = ClassProp
	}

	switch {
	case name == KeyProp:
	case name == RefProp:
		if h, ok := value.(*RefHandle); ok && h != nil {
			if prev, _ := old.(*RefHandle); prev == h {
				return
			}
		}
		if ref := RefOf(old); ref != nil {
			ref(nil)
		}
		if ref := RefOf(value); ref != nil {
			ref(node)
		}
	case name == ClassProp && !isSVG:
		var class string
		if value != nil && !isFalse(value) {
			class = stringify(value)
		}
		node.SetClassName(class)
	case name == StyleProp:
		setStyle(node.Style(), old, value)
	case name == InnerHTMLProp:
		if value != nil {
			node.SetInnerHTML(markupOf(value))
		}
	case len(name) > 2 && name[0] == 'o' && name[1] == 'n':
		a.setListener(node, name, old, value)
	case name != "list" && name != "type" && !isSVG && node.HasProperty(name):
		var v any = ""
		if value != nil {
			v = value
		}
		// Hosts reject some property/value combinations; the failure is
		// deliberately dropped and no attribute fallback is attempted.
		_ = node.SetProperty(name, v)
		if value == nil || isFalse(value) {
			node.RemoveAttribute(name)
		}
	default:
		setAttribute(node, name, value, isSVG)
	}
}

func (a *Accessor) setListener(node Element, name string, old, value any) {
	trimmed := strings.TrimSuffix(name, "Capture")
	useCapture := trimmed != name
	typ := strings.ToLower(trimmed[2:])

	handler := asHandler(value)
	if handler != nil {
		if asHandler(old) == nil {
			node.AddEventListener(typ, a.proxy, useCapture)
		}
	} else {
		node.RemoveEventListener(typ, a.proxy, useCapture)
	}

	data := node.Data()
	if data.Listeners == nil {
		data.Listeners = make(map[string]EventHandler)
	}
	data.Listeners[typ] = handler
}

func setAttribute(node Element, name string, value any, isSVG bool) {
	stripped, xlink := strings.CutPrefix(name, "xlink")
	if xlink {
		stripped = strings.TrimPrefix(stripped, ":")
	}
	ns := isSVG && xlink
	if ns {
		name = strings.ToLower(stripped)
	}

	if value == nil || isFalse(value) {
		if ns {
			node.RemoveAttributeNS(XLinkNamespace, name)
		} else {
			node.RemoveAttribute(name)
		}
		return
	}
	if isFunc(value) {
		return
	}
	if ns {
		node.SetAttributeNS(XLinkNamespace, name, stringify(value))
	} else {
		node.SetAttribute(name, stringify(value))
	}
}

func setStyle(style Style, old, value any) {
	_, oldIsString := old.(string)
	newMap, newIsMap := value.(map[string]any)
	if !newIsMap {
		if m, ok := value.(StyleMap); ok {
			newMap, newIsMap = m, true
		}
	}

	if value == nil || oldIsString || !newIsMap {
		s, _ := value.(string)
		style.SetCSSText(s)
	}
	if !newIsMap {
		return
	}
	if !oldIsString {
		for name := range styleMap(old) {
			if _, ok := newMap[name]; !ok {
				style.Set(name, "")
			}
		}
	}
	var newNames []string
	for name := range newMap {
		newNames = append(newNames, name)
	}
	slices.Sort(newNames)
	for _, name := range newNames {
		style.Set(name, styleValue(name, newMap[name]))
	}
}

// StyleMap is a structured style value.
type StyleMap map[string]any

func styleMap(v any) map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return m
	case StyleMap:
		return m
	default:
		return nil
	}
}

func styleValue(name string, v any) string {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		if nonDimensional.MatchString(camelName(name)) {
			return fmt.Sprint(n)
		}
		return fmt.Sprint(n) + "px"
	default:
		return stringify(v)
	}
}

func markupOf(v any) string {
	switch m := v.(type) {
	case Markup:
		return m.HTML
	case *Markup:
		if m == nil {
			return ""
		}
		return m.HTML
	case string:
		return m
	case map[string]any:
		s, _ := m["__html"].(string)
		return s
	default:
		return ""
	}
}

func asHandler(v any) EventHandler {
	switch h := v.(type) {
	case EventHandler:
		return h
	case func(*Event):
		return h
	case func():
		if h == nil {
			return nil
		}
		return func(*Event) { h() }
	default:
		return nil
	}
}

func isFalse(v any) bool {
	b, ok := v.(bool)
	return ok && !b
}

func isFunc(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}

// eventProxy is the single listener registered for every handler an
// Accessor applies. It resolves the handler from the current target's
// NodeData at dispatch time.
type eventProxy struct {
	transform func(*Event) *Event
}

func (p *eventProxy) HandleEvent(e *Event) {
	if e.CurrentTarget == nil {
		return
	}
	handler := e.CurrentTarget.Data().Listeners[e.Type]
	if handler == nil {
		return
	}
	if p.transform != nil {
		if transformed := p.transform(e); transformed != nil {
			e = transformed
		}
	}
	handler(e)
}

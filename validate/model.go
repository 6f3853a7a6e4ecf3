package validate

// MapModel is a [Model] that keeps attributes and errors in maps.
type MapModel struct {
	attrs  map[string]any
	errors map[string][]string
}

// NewMapModel creates a MapModel with attrs, which may be nil.
func NewMapModel(attrs map[string]any) *MapModel {
	if attrs == nil {
		attrs = map[string]any{}
	}
	return &MapModel{attrs: attrs, errors: map[string][]string{}}
}

// Attribute returns the value of the named attribute.
func (m *MapModel) Attribute(name string) (any, bool) {
	v, ok := m.attrs[name]
	return v, ok
}

// SetAttribute sets the value of the named attribute.
func (m *MapModel) SetAttribute(name string, value any) {
	m.attrs[name] = value
}

// AddError records message for the named attribute.
func (m *MapModel) AddError(name, message string) {
	m.errors[name] = append(m.errors[name], message)
}

// Errors returns the errors recorded for the named attribute.
func (m *MapModel) Errors(name string) []string {
	return m.errors[name]
}

// HasErrors returns true if errors have been recorded for the named
// attribute.
func (m *MapModel) HasErrors(name string) bool {
	return len(m.errors[name]) > 0
}

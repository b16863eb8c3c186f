package layer

// Attributes is an ordered name -> value mapping for feature attributes.
// Iteration order is insertion order. The search core never reads attribute
// names; it only writes its documented outputs (nearest_id, nearest_dist).
type Attributes struct {
	names []string
	vals  map[string]any
}

// NewAttributes creates an empty attribute mapping.
func NewAttributes() *Attributes {
	return &Attributes{vals: make(map[string]any)}
}

// Set stores a value, preserving first-insertion order for the name.
func (a *Attributes) Set(name string, value any) {
	if _, ok := a.vals[name]; !ok {
		a.names = append(a.names, name)
	}
	a.vals[name] = value
}

// Get returns the value for name and whether it is present.
func (a *Attributes) Get(name string) (any, bool) {
	v, ok := a.vals[name]
	return v, ok
}

// Names returns attribute names in insertion order.
func (a *Attributes) Names() []string {
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	return len(a.names)
}

// Clone returns a deep copy of the mapping (values are copied shallowly).
func (a *Attributes) Clone() *Attributes {
	c := NewAttributes()
	for _, n := range a.names {
		c.Set(n, a.vals[n])
	}
	return c
}

// Float returns the attribute as float64. JSON numbers decode as float64;
// int and bool values are coerced (true=1, false=0).
func (a *Attributes) Float(name string) (float64, bool) {
	v, ok := a.vals[name]
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// Bool returns the attribute as bool. Numeric values are coerced (non-zero=true).
func (a *Attributes) Bool(name string) (bool, bool) {
	v, ok := a.vals[name]
	if !ok {
		return false, false
	}
	switch t := v.(type) {
	case bool:
		return t, true
	case float64:
		return t != 0, true
	case int:
		return t != 0, true
	case int64:
		return t != 0, true
	default:
		return false, false
	}
}

// Int returns the attribute as int, truncating floats.
func (a *Attributes) Int(name string) (int, bool) {
	f, ok := a.Float(name)
	if !ok {
		return 0, false
	}
	return int(f), true
}

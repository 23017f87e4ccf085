package radvis

// Attributes holds domain field values of a segment or an edge (belagArt, breite, parkenTyp, ...).
// Values are scalars, slices or nested maps as decoded from JSON or set by the form
type Attributes map[string]interface{}

// Clone returns independent structural copy of attributes
func (attrs Attributes) Clone() Attributes {
	if attrs == nil {
		return nil
	}
	out := make(Attributes, len(attrs))
	for field, value := range attrs {
		out[field] = cloneValue(value)
	}
	return out
}

// Fields returns field names of attributes (order is not defined)
func (attrs Attributes) Fields() []string {
	fields := make([]string, 0, len(attrs))
	for field := range attrs {
		fields = append(fields, field)
	}
	return fields
}

// cloneValue copies containers and keeps scalars as they are
func cloneValue(value interface{}) interface{} {
	switch v := value.(type) {
	case Attributes:
		return v.Clone()
	case map[string]interface{}:
		return map[string]interface{}(Attributes(v).Clone())
	case []interface{}:
		if v == nil {
			return v
		}
		out := make([]interface{}, len(v))
		for i := range v {
			out[i] = cloneValue(v[i])
		}
		return out
	case []string:
		if v == nil {
			return v
		}
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []int:
		if v == nil {
			return v
		}
		out := make([]int, len(v))
		copy(out, v)
		return out
	case []int64:
		if v == nil {
			return v
		}
		out := make([]int64, len(v))
		copy(out, v)
		return out
	case []float64:
		if v == nil {
			return v
		}
		out := make([]float64, len(v))
		copy(out, v)
		return out
	case []bool:
		if v == nil {
			return v
		}
		out := make([]bool, len(v))
		copy(out, v)
		return out
	case *float64:
		if v == nil {
			return v
		}
		cp := *v
		return &cp
	case *int:
		if v == nil {
			return v
		}
		cp := *v
		return &cp
	case *string:
		if v == nil {
			return v
		}
		cp := *v
		return &cp
	default:
		return value
	}
}

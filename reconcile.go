package radvis

import (
	"reflect"
	"sort"

	"github.com/pkg/errors"
)

// ReconciledFieldValue is either a value shared by all reconciled entities or Undetermined
type ReconciledFieldValue struct {
	Determined bool        `json:"determined"`
	Value      interface{} `json:"value,omitempty"`
}

// Determined wraps shared value
func Determined(value interface{}) ReconciledFieldValue {
	return ReconciledFieldValue{Determined: true, Value: value}
}

// Undetermined marks entities disagreeing on a field
func Undetermined() ReconciledFieldValue {
	return ReconciledFieldValue{}
}

// Reconcile computes per field either the value shared by all entities or Undetermined.
//
// Slice values agree when they have the same length and the same elements regardless of order.
// Other values agree when they are equal. All entities must expose the same fields
func Reconcile(entities []Attributes) (map[string]ReconciledFieldValue, error) {
	if len(entities) == 0 {
		return nil, errors.Wrap(ErrInvariantViolation, "nothing to reconcile")
	}
	fields := sortedFields(entities[0])
	if err := checkSchema(fields, entities); err != nil {
		return nil, err
	}
	reconciled := make(map[string]ReconciledFieldValue, len(fields))
	for _, field := range fields {
		first := entities[0][field]
		agreeing := true
		if isSlice(first) {
			for _, entity := range entities[1:] {
				if !sameElementSet(first, entity[field]) {
					agreeing = false
					break
				}
			}
		} else {
			for _, entity := range entities[1:] {
				if !valuesEqual(first, entity[field]) {
					agreeing = false
					break
				}
			}
		}
		if agreeing {
			reconciled[field] = Determined(first)
		} else {
			reconciled[field] = Undetermined()
		}
	}
	return reconciled, nil
}

// checkSchema reports first field not shared by every entity
func checkSchema(fields []string, entities []Attributes) error {
	for i, entity := range entities[1:] {
		for _, field := range fields {
			if _, ok := entity[field]; !ok {
				return errors.Wrapf(ErrSchemaMismatch, "field '%s' missing on entity %d", field, i+1)
			}
		}
		if len(entity) == len(fields) {
			continue
		}
		for _, field := range sortedFields(entity) {
			if _, ok := entities[0][field]; !ok {
				return errors.Wrapf(ErrSchemaMismatch, "field '%s' missing on entity 0", field)
			}
		}
	}
	return nil
}

func sortedFields(attrs Attributes) []string {
	fields := attrs.Fields()
	sort.Strings(fields)
	return fields
}

func isSlice(value interface{}) bool {
	if value == nil {
		return false
	}
	return reflect.TypeOf(value).Kind() == reflect.Slice
}

// sameElementSet compares two slices ignoring order. Duplicates only count for membership
func sameElementSet(a, b interface{}) bool {
	if !isSlice(b) {
		return false
	}
	va := reflect.ValueOf(a)
	vb := reflect.ValueOf(b)
	if va.Len() != vb.Len() {
		return false
	}
	return containsAll(va, vb) && containsAll(vb, va)
}

// containsAll checks if every element of sub is present in super
func containsAll(super, sub reflect.Value) bool {
	for i := 0; i < sub.Len(); i++ {
		found := false
		for j := 0; j < super.Len(); j++ {
			if valuesEqual(sub.Index(i).Interface(), super.Index(j).Interface()) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func valuesEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	switch ta.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
		reflect.Ptr, reflect.Chan, reflect.UnsafePointer:
		return a == b
	}
	// Structs and arrays may hold uncomparable values behind interface fields
	return reflect.DeepEqual(a, b)
}

// ReconcileSegments reconciles attributes of segments selected on one or several edges
func ReconcileSegments(segments []*AttributeSegment) (map[string]ReconciledFieldValue, error) {
	entities := make([]Attributes, len(segments))
	for i := range segments {
		entities[i] = segments[i].Attributes
	}
	return Reconcile(entities)
}

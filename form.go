package radvis

import "sort"

// FormField is a single field of an attribute form opened for several entities at once
type FormField struct {
	Value    ReconciledFieldValue
	Disabled bool
}

// FormModel is the state of an attribute form between Reconcile and write-back
type FormModel map[string]FormField

// WriteBackFunc writes value of field into the target entity with given position
type WriteBackFunc func(target int, field string, value interface{})

// NewFormModel returns form filled with reconciled values. Every field is enabled
func NewFormModel(reconciled map[string]ReconciledFieldValue) FormModel {
	form := make(FormModel, len(reconciled))
	for field, value := range reconciled {
		form[field] = FormField{Value: value}
	}
	return form
}

// Set stores value chosen by user. Field becomes determined
func (form FormModel) Set(field string, value interface{}) {
	f := form[field]
	f.Value = Determined(value)
	form[field] = f
}

// Reset marks field as undetermined again
func (form FormModel) Reset(field string) {
	f := form[field]
	f.Value = Undetermined()
	form[field] = f
}

// Disable excludes field from write-back regardless of its value
func (form FormModel) Disable(field string) {
	f := form[field]
	f.Disabled = true
	form[field] = f
}

// Enable includes field into write-back
func (form FormModel) Enable(field string) {
	f := form[field]
	f.Disabled = false
	form[field] = f
}

// Apply calls writeBack for every enabled determined field on every target.
// Undetermined fields are skipped so values the user did not decide on stay as they are per entity
func (form FormModel) Apply(targetCount int, writeBack WriteBackFunc) {
	fields := make([]string, 0, len(form))
	for field, f := range form {
		if f.Disabled || !f.Value.Determined {
			continue
		}
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for target := 0; target < targetCount; target++ {
		for _, field := range fields {
			writeBack(target, field, form[field].Value.Value)
		}
	}
}

// ApplyTo writes form into attributes of given entities. Every entity gets its own copy of a value
func (form FormModel) ApplyTo(entities []Attributes) {
	form.Apply(len(entities), func(target int, field string, value interface{}) {
		if entities[target] == nil {
			entities[target] = make(Attributes)
		}
		entities[target][field] = cloneValue(value)
	})
}

// ApplyToSegments writes form into attributes of given segments
func (form FormModel) ApplyToSegments(segments []*AttributeSegment) {
	form.Apply(len(segments), func(target int, field string, value interface{}) {
		if segments[target].Attributes == nil {
			segments[target].Attributes = make(Attributes)
		}
		segments[target].Attributes[field] = cloneValue(value)
	})
}

package radvis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileScalars(t *testing.T) {
	reconciled, err := Reconcile([]Attributes{{"a": 1}, {"a": 1}, {"a": 1}})
	require.NoError(t, err)
	assert.Equal(t, map[string]ReconciledFieldValue{"a": Determined(1)}, reconciled)

	reconciled, err = Reconcile([]Attributes{{"a": 1}, {"a": 2}})
	require.NoError(t, err)
	assert.Equal(t, map[string]ReconciledFieldValue{"a": Undetermined()}, reconciled)
	assert.False(t, reconciled["a"].Determined)
}

func TestReconcileMixedFields(t *testing.T) {
	reconciled, err := Reconcile([]Attributes{
		{"belagArt": "ASPHALT", "breite": 2.5, "beleuchtung": nil, "radweg": true, "zahl": 1},
		{"belagArt": "ASPHALT", "breite": 3.0, "beleuchtung": nil, "radweg": true, "zahl": 1.0},
	})
	require.NoError(t, err)
	assert.Equal(t, Determined("ASPHALT"), reconciled["belagArt"])
	assert.Equal(t, Undetermined(), reconciled["breite"])
	assert.Equal(t, Determined(nil), reconciled["beleuchtung"])
	assert.Equal(t, Determined(true), reconciled["radweg"])
	assert.Equal(t, Undetermined(), reconciled["zahl"], "int and float64 differ")
}

func TestReconcileSlices(t *testing.T) {
	reconciled, err := Reconcile([]Attributes{{"tags": []interface{}{1, 2}}, {"tags": []interface{}{2, 1}}})
	require.NoError(t, err)
	assert.Equal(t, Determined([]interface{}{1, 2}), reconciled["tags"])

	reconciled, err = Reconcile([]Attributes{{"tags": []interface{}{1, 2}}, {"tags": []interface{}{1, 3}}})
	require.NoError(t, err)
	assert.Equal(t, Undetermined(), reconciled["tags"])

	reconciled, err = Reconcile([]Attributes{{"tags": []interface{}{1, 2}}, {"tags": []interface{}{1, 2, 2}}})
	require.NoError(t, err)
	assert.Equal(t, Undetermined(), reconciled["tags"], "length differs")

	reconciled, err = Reconcile([]Attributes{{"tags": []interface{}{1, 1, 2}}, {"tags": []interface{}{1, 2, 2}}})
	require.NoError(t, err)
	assert.True(t, reconciled["tags"].Determined, "duplicates only count for membership")

	reconciled, err = Reconcile([]Attributes{{"tags": []string{"x", "y"}}, {"tags": []string{"y", "x"}}, {"tags": "x"}})
	require.NoError(t, err)
	assert.Equal(t, Undetermined(), reconciled["tags"])

	reconciled, err = Reconcile([]Attributes{
		{"netze": []interface{}{map[string]interface{}{"id": 1.0}}},
		{"netze": []interface{}{map[string]interface{}{"id": 1.0}}},
	})
	require.NoError(t, err)
	assert.True(t, reconciled["netze"].Determined)
}

func TestReconcileSchemaMismatch(t *testing.T) {
	_, err := Reconcile([]Attributes{{"a": 1, "b": 2}, {"a": 1}})
	require.ErrorIs(t, err, ErrSchemaMismatch)
	assert.Contains(t, err.Error(), "'b'")

	_, err = Reconcile([]Attributes{{"a": 1}, {"a": 1, "c": 2}})
	require.ErrorIs(t, err, ErrSchemaMismatch)
	assert.Contains(t, err.Error(), "'c'")

	_, err = Reconcile(nil)
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestReconcileIdempotent(t *testing.T) {
	entities := []Attributes{
		{"a": 1, "b": []interface{}{"x", "y"}, "c": "z"},
		{"a": 2, "b": []interface{}{"y", "x"}, "c": "z"},
	}
	before := []Attributes{entities[0].Clone(), entities[1].Clone()}

	first, err := Reconcile(entities)
	require.NoError(t, err)
	second, err := Reconcile(entities)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, before, entities)
}

func TestReconcileSegments(t *testing.T) {
	segments := threeSegments()
	reconciled, err := ReconcileSegments([]*AttributeSegment{&segments[0], &segments[2]})
	require.NoError(t, err)
	assert.Equal(t, Undetermined(), reconciled["belagArt"])

	_, err = ReconcileSegments([]*AttributeSegment{&segments[0], &segments[1]})
	assert.ErrorIs(t, err, ErrSchemaMismatch, "second segment has parken")
}

type wrappedValue struct {
	V interface{}
}

func TestReconcileStructsHoldingSlices(t *testing.T) {
	var reconciled map[string]ReconciledFieldValue
	var err error
	assert.NotPanics(t, func() {
		reconciled, err = Reconcile([]Attributes{{"a": wrappedValue{[]int{1}}}, {"a": wrappedValue{[]int{1}}}})
	})
	require.NoError(t, err)
	assert.True(t, reconciled["a"].Determined)

	assert.NotPanics(t, func() {
		reconciled, err = Reconcile([]Attributes{
			{"a": wrappedValue{[]int{1}}, "b": [1]interface{}{[]string{"x"}}},
			{"a": wrappedValue{[]int{2}}, "b": [1]interface{}{[]string{"x"}}},
		})
	})
	require.NoError(t, err)
	assert.Equal(t, Undetermined(), reconciled["a"])
	assert.True(t, reconciled["b"].Determined)

	// Pointers keep reference equality
	x, y := 1, 1
	reconciled, err = Reconcile([]Attributes{{"p": &x}, {"p": &y}})
	require.NoError(t, err)
	assert.Equal(t, Undetermined(), reconciled["p"])
	reconciled, err = Reconcile([]Attributes{{"p": &x}, {"p": &x}})
	require.NoError(t, err)
	assert.True(t, reconciled["p"].Determined)
}

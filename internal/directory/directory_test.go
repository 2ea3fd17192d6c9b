package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestSorted_TotalOrder(t *testing.T) {
	dir := &Directory{Businesses: map[string]*Business{
		"Mid":        {Name: "Mid", Stars: ptr(3.0)},
		"Top":        {Name: "Top", Stars: ptr(4.8)},
		"NoRating B": {Name: "NoRating B"},
		"NoRating A": {Name: "NoRating A"},
		"Tie B":      {Name: "Tie B", Stars: ptr(4.8)},
	}}

	got := dir.Sorted()
	names := make([]string, 0, len(got))
	for _, b := range got {
		names = append(names, b.Name)
	}

	// Stars descending, null ratings after all rated, ties by name ascending.
	assert.Equal(t, []string{"Tie B", "Top", "Mid", "NoRating A", "NoRating B"}, names)
}

func TestSorted_RecomputedPerCall(t *testing.T) {
	dir := &Directory{Businesses: map[string]*Business{
		"A": {Name: "A", Stars: ptr(1.0)},
		"B": {Name: "B", Stars: ptr(2.0)},
	}}
	require.Equal(t, "B", dir.Sorted()[0].Name)

	dir.Businesses["A"].Stars = ptr(5.0)
	require.Equal(t, "A", dir.Sorted()[0].Name)
}

func TestMarshal_InterchangeShape(t *testing.T) {
	dir := &Directory{Businesses: map[string]*Business{
		"A": {Name: "A", Stars: ptr(4.0)},
	}}

	data, err := dir.MarshalJSON()
	require.NoError(t, err)

	s := string(data)
	// Missing fields are explicit nulls, never omitted keys.
	assert.Contains(t, s, `"number":null`)
	assert.Contains(t, s, `"hours":null`)
	assert.Contains(t, s, `"price_range":null`)
	assert.Contains(t, s, `"stars":4`)
	// The record name is the map key, not a field.
	assert.NotContains(t, s, `"name"`)
}

package cel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/suggest/pkg/suggest"
)

func states() []suggest.Suggestion {
	return []suggest.Suggestion{
		suggest.Item("AL", "Alabama"),
		suggest.Item("AK", "Alaska"),
		suggest.Item("AZ", "Arizona"),
		suggest.Plain("Colorado"),
	}
}

func displayed(items []suggest.Suggestion) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = s.DisplayLabel()
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []string
	}{
		{name: "empty keeps all", expr: "", want: []string{"Alabama", "Alaska", "Arizona", "Colorado"}},
		{name: "label prefix", expr: `_.label.startsWith("Ala")`, want: []string{"Alabama", "Alaska"}},
		{name: "value equality", expr: `_.value == "AZ"`, want: []string{"Arizona"}},
		{name: "index", expr: `_.index >= 2`, want: []string{"Arizona", "Colorado"}},
		{name: "string extension", expr: `_.label.lowerAscii().contains("rad")`, want: []string{"Colorado"}},
		{name: "none match", expr: `false`, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Filter(tt.expr, states())
			require.NoError(t, err)
			assert.Equal(t, tt.want, displayed(got))
		})
	}
}

func TestFilterNumericValues(t *testing.T) {
	items := []suggest.Suggestion{
		suggest.Item(1, "one"),
		suggest.Item(int32(2), "two"),
		suggest.Item("3", "three"),
	}
	got, err := Filter(`type(_.value) == int && _.value > 1`, items)
	require.NoError(t, err)
	assert.Equal(t, []string{"two"}, displayed(got))
}

func TestCompileErrors(t *testing.T) {
	ev, err := NewEvaluator()
	require.NoError(t, err)

	_, err = ev.Compile(`_.label.startsWith(`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compilation error")

	_, err = ev.Compile(`"not a bool"`)
	require.ErrorIs(t, err, ErrNotBool)
}

func TestMatchRejectsDynamicNonBool(t *testing.T) {
	ev, err := NewEvaluator()
	require.NoError(t, err)
	pred, err := ev.Compile(`_.value`)
	require.NoError(t, err)
	assert.Equal(t, "_.value", pred.String())

	_, err = pred.Filter(states())
	require.ErrorIs(t, err, ErrNotBool)
	assert.Contains(t, err.Error(), "suggestion 0 (Alabama)")
}

func TestBinding(t *testing.T) {
	b := Binding(suggest.Item(int32(7), nil), 4)
	assert.Equal(t, int64(7), b["value"])
	assert.Equal(t, "7", b["label"])
	assert.Equal(t, int64(4), b["index"])
}

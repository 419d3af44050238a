package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStr(t *testing.T) {
	assert.Nil(t, Str(nil))
	assert.Nil(t, Str(""))

	s := Str("Tuguegarao")
	require.NotNil(t, s)
	assert.Equal(t, "Tuguegarao", *s)

	n := Str(float64(7))
	require.NotNil(t, n)
	assert.Equal(t, "7", *n)

	f := Str(2.5)
	require.NotNil(t, f)
	assert.Equal(t, "2.5", *f)

	b := Str(true)
	require.NotNil(t, b)
	assert.Equal(t, "true", *b)
}

func TestToNumber(t *testing.T) {
	assert.Nil(t, ToNumber(nil))
	assert.Nil(t, ToNumber(""))
	assert.Nil(t, ToNumber("not a number"))

	n := ToNumber("42")
	require.NotNil(t, n)
	assert.Equal(t, 42.0, *n)

	n = ToNumber(3.25)
	require.NotNil(t, n)
	assert.Equal(t, 3.25, *n)
}

func TestToBoolTriState(t *testing.T) {
	yes := true
	no := false

	cases := []struct {
		name string
		in   interface{}
		want *bool
	}{
		{"string one", "1", &yes},
		{"number one", float64(1), &yes},
		{"bool true", true, &yes},
		{"string two", "2", &no},
		{"number two", float64(2), &no},
		{"bool false", false, &no},
		{"sentinel 66", "66", &no},
		{"empty string", "", &no},
		{"missing", nil, &no},
		{"garbage", "maybe", nil},
		{"other number", float64(3), nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ToBool(tc.in)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tc.want, *got)
		})
	}
}

func TestToStringArray(t *testing.T) {
	assert.Nil(t, ToStringArray(nil))
	assert.Nil(t, ToStringArray([]interface{}{}))

	// scalar wraps into a single-element slice
	assert.Equal(t, []string{"03"}, ToStringArray("03"))
	assert.Equal(t, []string{"7"}, ToStringArray(float64(7)))

	// order is preserved
	got := ToStringArray([]interface{}{"02", "01", "05"})
	assert.Equal(t, []string{"02", "01", "05"}, got)
}

func TestSectionAccessors(t *testing.T) {
	sec := Section{
		"barangayName": "Ugac Sur",
		"age":          float64(34),
		"savings":      "1",
		"sacraments":   []interface{}{"01", "02"},
	}

	v := GetValue(sec, "barangayName")
	require.NotNil(t, v)
	assert.Equal(t, "Ugac Sur", *v)
	assert.Nil(t, GetValue(sec, "missing"))
	assert.Nil(t, GetValue(nil, "barangayName"))

	age := GetInt(sec, "age")
	require.NotNil(t, age)
	assert.Equal(t, 34, *age)

	savings := GetBool(sec, "savings")
	require.NotNil(t, savings)
	assert.True(t, *savings)

	assert.Equal(t, []string{"01", "02"}, GetArray(sec, "sacraments"))
}

func TestParallelArrayAccess(t *testing.T) {
	sec := Section{
		"m_name": []interface{}{"Ana", "", "Jose"},
		"m_age":  []interface{}{float64(12)},
	}

	assert.Equal(t, 3, ArrayLen(sec, "m_name"))
	assert.Equal(t, 0, ArrayLen(sec, "m_missing"))

	assert.Equal(t, "Ana", At(sec, "m_name", 0))
	assert.Nil(t, At(sec, "m_name", 5))
	assert.Nil(t, At(sec, "m_name", -1))

	// ragged parallel arrays read as nil past their end
	assert.Nil(t, At(sec, "m_age", 2))
}

func TestAtOKDistinguishesAbsentFromNull(t *testing.T) {
	sec := Section{
		"m_studying": []interface{}{"1", nil},
	}

	// a submitted slot, even a null one, is present
	v, ok := AtOK(sec, "m_studying", 0)
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	v, ok = AtOK(sec, "m_studying", 1)
	assert.True(t, ok)
	assert.Nil(t, v)

	// past the end and missing fields were never submitted
	_, ok = AtOK(sec, "m_studying", 2)
	assert.False(t, ok)
	_, ok = AtOK(sec, "m_missing", 0)
	assert.False(t, ok)
	_, ok = AtOK(nil, "m_studying", 0)
	assert.False(t, ok)
}

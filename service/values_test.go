package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValues_Add(t *testing.T) {
	tests := []struct {
		name     string
		build    func() *Values
		wantKeys []string
		wantVals map[string][]string
	}{
		{
			name: "given values under distinct keys, then keys keep insertion order",
			build: func() *Values {
				return NewValues().Add("b", "1").Add("a", "2").Add("c", "3")
			},
			wantKeys: []string{"b", "a", "c"},
			wantVals: map[string][]string{"b": {"1"}, "a": {"2"}, "c": {"3"}},
		},
		{
			name: "given repeated key, then values extend in call order",
			build: func() *Values {
				return NewValues().Add("k", "v1").Add("k", "v2", "v3")
			},
			wantKeys: []string{"k"},
			wantVals: map[string][]string{"k": {"v1", "v2", "v3"}},
		},
		{
			name: "given zero values, then key is not created",
			build: func() *Values {
				return NewValues().Add("k")
			},
			wantKeys: nil,
			wantVals: map[string][]string{},
		},
		{
			name: "given blank key, then nothing is added",
			build: func() *Values {
				return NewValues().Add("", "v")
			},
			wantKeys: nil,
			wantVals: map[string][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.build()

			assert.Equal(t, tt.wantKeys, v.Keys())
			for k, want := range tt.wantVals {
				assert.Equal(t, want, v.Get(k))
			}
			assert.Equal(t, len(tt.wantKeys), v.Len())
		})
	}
}

func TestValues_SetAndDel(t *testing.T) {
	v := NewValues().Add("a", "1", "2").Add("b", "3")

	v.Set("a", "9")
	assert.Equal(t, []string{"9"}, v.Get("a"))

	v.Del("b")
	assert.False(t, v.Has("b"))
	assert.Equal(t, []string{"a"}, v.Keys())

	v.Set("a")
	assert.False(t, v.Has("a"))
	assert.Zero(t, v.Len())
}

func TestValues_Merge(t *testing.T) {
	v := NewValues().Add("a", "1")
	other := NewValues().Add("a", "2").Add("b", "3")

	v.Merge(other)

	assert.Equal(t, []string{"a", "b"}, v.Keys())
	assert.Equal(t, []string{"1", "2"}, v.Get("a"))
	assert.Equal(t, []string{"3"}, v.Get("b"))

	// Merging nil changes nothing.
	v.Merge(nil)
	assert.Equal(t, 2, v.Len())
}

func TestValues_Encode(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Values
		want  string
	}{
		{
			name:  "given empty values, then empty string",
			build: NewValues,
			want:  "",
		},
		{
			name: "given several keys, then encoded in insertion order",
			build: func() *Values {
				return NewValues().Add("z", "1").Add("a", "2", "3")
			},
			want: "z=1&a=2&a=3",
		},
		{
			name: "given reserved characters, then percent-encoded",
			build: func() *Values {
				return NewValues().Add("q", "a b&c")
			},
			want: "q=a+b%26c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.build().Encode())
		})
	}
}

func TestValues_Clone(t *testing.T) {
	v := NewValues().Add("a", "1")

	clone := v.Clone()
	clone.Add("a", "2").Add("b", "3")

	assert.Equal(t, []string{"1"}, v.Get("a"))
	assert.False(t, v.Has("b"))
	assert.Equal(t, []string{"1", "2"}, clone.Get("a"))

	var nilValues *Values
	cloned := nilValues.Clone()
	require.NotNil(t, cloned)
	assert.Zero(t, cloned.Len())
}

func TestParseValues(t *testing.T) {
	v, err := parseValues("baz=boom&a=1&baz=bang")
	require.NoError(t, err)

	assert.Equal(t, []string{"baz", "a"}, v.Keys())
	assert.Equal(t, []string{"boom", "bang"}, v.Get("baz"))
	assert.Equal(t, []string{"1"}, v.Get("a"))

	_, err = parseValues("bad=%zz")
	assert.Error(t, err)
}

package signature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// f(x, y=2, *args, scale=1, **kwargs)
func fullSignature() *Signature {
	return MustNew(
		Param("x"),
		Optional("y", 2.0),
		VarArgs("args"),
		KeywordOnly("scale", 1.0),
		VarKwargs("kwargs"),
	)
}

func TestNew_Valid(t *testing.T) {
	sig := fullSignature()
	assert.Equal(t, []string{"x", "y", "args", "scale", "kwargs"}, sig.Names())

	p, ok := sig.Lookup("scale")
	require.True(t, ok)
	assert.Equal(t, Keyword, p.Kind)
	assert.Equal(t, 1.0, p.Default)

	vp, ok := sig.VarPositional()
	require.True(t, ok)
	assert.Equal(t, "args", vp.Name)
	vk, ok := sig.VarKeyword()
	require.True(t, ok)
	assert.Equal(t, "kwargs", vk.Name)

	plain := MustNew(Param("a"))
	_, ok = plain.VarPositional()
	assert.False(t, ok)
	_, ok = plain.VarKeyword()
	assert.False(t, ok)
	_, ok = plain.Lookup("b")
	assert.False(t, ok)
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		params []Parameter
	}{
		{"empty name", []Parameter{Param("")}},
		{"duplicate", []Parameter{Param("a"), Param("a")}},
		{"two positional collectors", []Parameter{VarArgs("a"), VarArgs("b")}},
		{"parameter after keyword collector", []Parameter{VarKwargs("kw"), Param("a")}},
		{"positional after collector", []Parameter{VarArgs("args"), Param("a")}},
		{"positional after keyword-only", []Parameter{KeywordOnly("k", 1), Param("a")}},
		{"required after default", []Parameter{Optional("a", 1), Param("b")}},
		{"collector default", []Parameter{{Name: "args", Kind: VarPositional, HasDefault: true}}},
		{"unknown kind", []Parameter{{Name: "a", Kind: Kind(42)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.params...)
			assert.ErrorIs(t, err, ErrInvalidSignature)
		})
	}

	assert.Panics(t, func() { MustNew(Param("a"), Param("a")) })
}

func TestBind(t *testing.T) {
	sig := fullSignature()
	tests := []struct {
		name   string
		args   []any
		kwargs map[string]any
		want   ArgumentMap
	}{
		{
			name: "defaults and empty collectors",
			args: []any{1.0},
			want: ArgumentMap{"x": 1.0, "y": 2.0, "args": []any{}, "scale": 1.0, "kwargs": map[string]any{}},
		},
		{
			name: "extra positionals",
			args: []any{1.0, 3.0, 4.0, 5.0},
			want: ArgumentMap{"x": 1.0, "y": 3.0, "args": []any{4.0, 5.0}, "scale": 1.0, "kwargs": map[string]any{}},
		},
		{
			name:   "keywords",
			kwargs: map[string]any{"y": 7.0, "x": 6.0, "scale": 0.5, "extra": "z"},
			want: ArgumentMap{
				"x": 6.0, "y": 7.0, "args": []any{}, "scale": 0.5,
				"kwargs": map[string]any{"extra": "z"},
			},
		},
		{
			name:   "collector names are not keywords",
			args:   []any{1.0},
			kwargs: map[string]any{"args": 9.0},
			want: ArgumentMap{
				"x": 1.0, "y": 2.0, "args": []any{}, "scale": 1.0,
				"kwargs": map[string]any{"args": 9.0},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sig.Bind(tt.args, tt.kwargs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, len(sig.Names()))
		})
	}
}

func TestBind_Errors(t *testing.T) {
	tests := []struct {
		name   string
		sig    *Signature
		args   []any
		kwargs map[string]any
		param  string
		reason string
	}{
		{"too many positionals", MustNew(Param("a")), []any{1, 2}, nil, "", "too many positional arguments"},
		{"duplicate", MustNew(Param("a")), []any{1}, map[string]any{"a": 2}, "a", "multiple values for argument"},
		{"unexpected keyword", MustNew(Param("a")), []any{1}, map[string]any{"b": 2}, "b", "got an unexpected keyword argument"},
		{"missing positional", MustNew(Param("a"), Param("b")), []any{1}, nil, "b", "missing a required argument"},
		{"missing keyword-only", MustNew(Param("a"), RequiredKeyword("k")), []any{1}, nil, "k", "missing a required argument"},
		{"keyword-only by position", MustNew(Param("a"), KeywordOnly("k", 1)), []any{1, 2}, nil, "", "too many positional arguments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.sig.Bind(tt.args, tt.kwargs)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrBinding)

			var be *BindingError
			require.ErrorAs(t, err, &be)
			assert.Equal(t, tt.param, be.Param)
			assert.Equal(t, tt.reason, be.Reason)
		})
	}
}

func TestBind_DoesNotModifyInputs(t *testing.T) {
	sig := fullSignature()
	args := []any{1.0, 2.0, 3.0}
	kwargs := map[string]any{"other": 4.0}
	_, err := sig.Bind(args, kwargs)
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, 2.0, 3.0}, args)
	assert.Equal(t, map[string]any{"other": 4.0}, kwargs)
}

func TestBindingError_Message(t *testing.T) {
	_, err := fullSignature().Bind(nil, nil)
	require.Error(t, err)
	assert.Equal(t, `signature: missing a required argument "x"`, err.Error())

	_, err = MustNew(Param("a")).Bind([]any{1, 2}, nil)
	require.Error(t, err)
	assert.Equal(t, "signature: too many positional arguments", err.Error())
}

func TestCall_RoundTrip(t *testing.T) {
	sig := fullSignature()
	m, err := sig.Bind([]any{1.0, 3.0, 4.0}, map[string]any{"scale": 0.5, "extra": "z"})
	require.NoError(t, err)

	args, kwargs := sig.Call(m)
	assert.Equal(t, []any{1.0, 3.0, 4.0}, args)
	assert.Equal(t, map[string]any{"scale": 0.5, "extra": "z"}, kwargs)

	again, err := sig.Bind(args, kwargs)
	require.NoError(t, err)
	assert.Equal(t, m, again)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "POSITIONAL", Positional.String())
	assert.Equal(t, "VAR_POSITIONAL", VarPositional.String())
	assert.Equal(t, "VAR_KEYWORD", VarKeyword.String())
	assert.Equal(t, "KEYWORD", Keyword.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

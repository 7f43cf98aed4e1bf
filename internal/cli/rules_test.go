package cli

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesCommand_Text(t *testing.T) {
	out, err := execute(t, "rules")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "rules_text", []byte(out))
}

func TestRulesCommand_JSON(t *testing.T) {
	out, err := execute(t, "rules", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   []RuleInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 10)
	assert.Equal(t, RuleInfo{Name: "sobel", Symmetry: "sign-flip", JVP: "none", Modes: []string{"constant", "wrap"}}, resp.Data[5])
	assert.Equal(t, RuleInfo{
		Name: "uniform_filter", Symmetry: "self-adjoint", JVP: "same",
		Modes:       []string{"reflect", "constant", "wrap"},
		NarrowModes: []string{"nearest"},
	}, resp.Data[3])
	assert.Nil(t, resp.Data[9].Modes)
}

package cli

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedRunID(t *testing.T) {
	t.Helper()
	prev := newRunID
	newRunID = func() string { return "00000000-0000-0000-0000-000000000000" }
	t.Cleanup(func() { newRunID = prev })
}

func TestCheckCommand_Text(t *testing.T) {
	fixedRunID(t)
	out, err := execute(t, "check", "--config", "testdata/sweep.yaml")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "check_text", []byte(out))
}

func TestCheckCommand_JSON(t *testing.T) {
	fixedRunID(t)
	out, err := execute(t, "check", "--config", "testdata/sweep.yaml", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   Report `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "00000000-0000-0000-0000-000000000000", resp.Data.RunID)
	assert.Equal(t, 4, resp.Data.Passed)
	assert.Equal(t, 3, resp.Data.XFailed)
	require.Len(t, resp.Data.Results, 7)
	assert.Equal(t, StatusXFail, resp.Data.Results[1].Status)
	assert.NotEmpty(t, resp.Data.Results[1].Error)
	assert.Empty(t, resp.Data.Results[0].Error)
}

func TestCheckCommand_ForwardOnlyRunsExpectPass(t *testing.T) {
	out, err := execute(t, "check", "--config", "testdata/forward_sweep.yaml", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   Report `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Results, 5)
	assert.Equal(t, 5, resp.Data.Passed)
	assert.Zero(t, resp.Data.XPassed)
	for _, res := range resp.Data.Results {
		assert.True(t, res.Expected, res.Name)
		assert.Equal(t, StatusPass, res.Status, res.Name)
	}
}

func TestCheckCommand_Errors(t *testing.T) {
	_, err := execute(t, "check", "--config", "testdata/missing.yaml")
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = execute(t, "check", "--config", "testdata/sweep.yaml", "--order", "0")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestReport(t *testing.T) {
	r := &Report{}
	for _, s := range []Status{StatusPass, StatusXFail, StatusPass} {
		r.add(CaseResult{Status: s})
	}
	assert.True(t, r.OK())
	assert.Equal(t, 2, r.Passed)

	r.add(CaseResult{Status: StatusXPass})
	assert.False(t, r.OK())
	r = &Report{}
	r.add(CaseResult{Status: StatusError})
	assert.Equal(t, 1, r.Errors)
	assert.False(t, r.OK())
}

package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stoich/internal/ir"
	"github.com/roach88/stoich/internal/testutil"
)

func executeHistory(t *testing.T, opts *HistoryOptions) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := NewHistoryCommand(opts.RootOptions)
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	err := runHistory(opts, cmd)
	return out.String(), err
}

// seedHistory balances each equation into dbPath under its own run ID.
func seedHistory(t *testing.T, dbPath string, equations ...[2]string) {
	t.Helper()
	for i, eq := range equations {
		opts := &BalanceOptions{
			RootOptions: &RootOptions{Format: "text"},
			Database:    dbPath,
			Factor:      1,
			RunIDs:      testutil.NewConstantRunID("run-" + string(rune('a'+i))),
		}
		cmd := NewBalanceCommand(opts.RootOptions)
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		_ = runBalance(opts, []string{eq[0], eq[1]}, cmd)
	}
}

func TestHistory_Empty(t *testing.T) {
	out, err := executeHistory(t, &HistoryOptions{
		RootOptions: &RootOptions{Format: "text"},
		Database:    testutil.DBPath(t),
		Limit:       20,
	})
	require.NoError(t, err)
	assert.Equal(t, "No records found.\n", out)
}

func TestHistory_List(t *testing.T) {
	dbPath := testutil.DBPath(t)
	seedHistory(t, dbPath,
		[2]string{"CH4 + O2", "CO2 + H2O"},
		[2]string{"NaCl", "Na + Cl"},
		[2]string{"H2 + Cl2", "HCl + Cl2"},
	)

	out, err := executeHistory(t, &HistoryOptions{
		RootOptions: &RootOptions{Format: "text"},
		Database:    dbPath,
		Limit:       2,
	})
	require.NoError(t, err)

	assert.NotContains(t, out, "CH4")
	assert.Contains(t, out, "run-b  1 NaCl >>> 1 Na + 1 Cl")
	assert.Contains(t, out, "run-c  H2 + Cl2 >>> HCl + Cl2  [NO_SOLUTION] impossible")
}

func TestHistory_JSON(t *testing.T) {
	dbPath := testutil.DBPath(t)
	seedHistory(t, dbPath, [2]string{"CH4 + O2", "CO2 + H2O"})

	out, err := executeHistory(t, &HistoryOptions{
		RootOptions: &RootOptions{Format: "json"},
		Database:    dbPath,
	})
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   HistoryResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Equal(t, 1, resp.Data.Total)
	rec := resp.Data.Records[0]
	assert.Equal(t, []string{"1", "2", "1", "2"}, rec.Coefficients)
	assert.Equal(t, ir.MustEquationID("CH4 + O2", "CO2 + H2O", 1), rec.ID)
}

func TestHistory_ByID(t *testing.T) {
	dbPath := testutil.DBPath(t)
	seedHistory(t, dbPath, [2]string{"NaCl", "Na + Cl"})

	out, err := executeHistory(t, &HistoryOptions{
		RootOptions: &RootOptions{Format: "text"},
		Database:    dbPath,
		ID:          ir.MustEquationID("NaCl", "Na+Cl", 1),
	})
	require.NoError(t, err)
	assert.Contains(t, out, "1 NaCl >>> 1 Na + 1 Cl")

	out, err = executeHistory(t, &HistoryOptions{
		RootOptions: &RootOptions{Format: "text"},
		Database:    dbPath,
		ID:          "unknown",
	})
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, ErrCodeNotFound)
}

func TestHistory_ConflictingFilters(t *testing.T) {
	_, err := executeHistory(t, &HistoryOptions{
		RootOptions: &RootOptions{Format: "text"},
		Database:    testutil.DBPath(t),
		RunID:       "run-a",
		ID:          "abc",
	})
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestHistory_RequiresDB(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"history"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db")
}

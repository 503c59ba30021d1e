package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RMahshie/nonflow/internal/process"
	"github.com/RMahshie/nonflow/pkg/models"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCompute_JSON(t *testing.T) {
	out, err := run(t, "compute", "--process", "constant_volume", "--t0", "300", "--v0", "0.8", "--points", "5", "--format", "json")
	require.NoError(t, err)

	var points []models.StatePoint
	require.NoError(t, json.Unmarshal([]byte(out), &points))
	require.Len(t, points, 5)
	assert.Equal(t, 300.0, points[0].T)
	assert.InDelta(t, 600.0, points[4].T, 1e-9)
	for _, p := range points {
		assert.InDelta(t, 0.8, p.V, 1e-12)
	}
}

func TestCompute_CSV(t *testing.T) {
	out, err := run(t, "compute", "--process", "polytropic", "--n", "1.3", "--points", "6", "--ratio", "3", "--format", "csv")
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 7)
	assert.Equal(t, []string{"T", "P", "v", "s"}, rows[0])
	assert.Equal(t, "3", rows[6][2])
}

func TestCompute_Table(t *testing.T) {
	out, err := run(t, "compute", "--process", "isothermal", "--fluid", "nitrogen", "--model", "peng_robinson", "--points", "5")
	require.NoError(t, err)

	assert.Contains(t, out, "isothermal process, nitrogen (peng_robinson)")
	assert.Contains(t, out, "s [kJ/(kg·K)]")
	assert.Contains(t, out, "T: 300.00 → 300.00 K")
	assert.Contains(t, out, "v: 1.00000 → 2.00000 m³/kg")
}

func TestCompute_Errors(t *testing.T) {
	_, err := run(t, "compute", "--process", "polytropic")
	var invalid *process.InvalidParameterError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "n", invalid.Field)

	_, err = run(t, "compute", "--points", "51")
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "n_points", invalid.Field)

	_, err = run(t, "compute", "--process", "free_expansion")
	var unsupported *process.UnsupportedProcessError
	assert.ErrorAs(t, err, &unsupported)

	_, err = run(t, "compute", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestFluids(t *testing.T) {
	out, err := run(t, "fluids")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.Contains(t, out, "carbon_dioxide")
	assert.Contains(t, out, "287.05")
}

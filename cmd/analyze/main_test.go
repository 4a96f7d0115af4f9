package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bgoodwin24/insightforge/internal/catalog"
	"github.com/Bgoodwin24/insightforge/internal/models"
)

const salesCSV = `id,region,product,month,units,price,revenue
1,North,Widget,Jan,10,2.5,25
2,South,Widget,Jan,4,2.5,10
3,North,Gadget,Feb,6,5,30
4,East,Gadget,Feb,2,5,10
`

// execute runs a fresh root command and returns what it printed
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("HTTP_RETRY_COUNT", "0")

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte(salesCSV), 0o644))
	return path
}

func TestMethodsJSON(t *testing.T) {
	out, err := execute(t, "methods", "--format", "json")
	require.NoError(t, err)

	var list []methodInfo
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Len(t, list, len(catalog.Methods()))

	byName := make(map[string]methodInfo)
	for _, m := range list {
		byName[m.Name] = m
	}
	assert.Equal(t, models.ArchetypeBar, byName["grouped-sum"].Archetype)
	assert.Equal(t, []string{"column", "group_by"}, byName["grouped-sum"].Params)
	assert.Equal(t, models.ArchetypeMatrix, byName["correlation-matrix"].Archetype)
}

func TestMethodsTableAndGroup(t *testing.T) {
	out, err := execute(t, "methods", "--group", "outliers")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "GROUP"))
	assert.Contains(t, out, "zscore-outliers")
	assert.NotContains(t, out, "grouped-sum")

	_, err = execute(t, "methods", "--group", "nope")
	assert.Error(t, err)

	_, err = execute(t, "methods", "--format", "xml")
	assert.Error(t, err)
}

func TestRunAgainstMock(t *testing.T) {
	path := writeDataset(t)

	out, err := execute(t, "run", "--dataset", path, "--method", "grouped-sum", "--mock")
	require.NoError(t, err)

	var state models.ChartState
	require.NoError(t, json.Unmarshal([]byte(out), &state))
	assert.Equal(t, "grouped-sum", state.Method)
	assert.Equal(t, "aggregation", state.Group)
	assert.Equal(t, []string{"North", "South", "East"}, state.Chart.Labels)
	v, ok := state.Chart.Datasets[0].Data[0].Float()
	require.True(t, ok)
	assert.Equal(t, 55.0, v)
}

func TestRunWritesArtifacts(t *testing.T) {
	path := writeDataset(t)
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "report.html")
	pngPath := filepath.Join(dir, "chart.png")

	out, err := execute(t, "run",
		"--dataset", path,
		"--method", "histogram",
		"--mock",
		"--format", "markdown",
		"--html", htmlPath,
		"--png", pngPath,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "# Histogram")

	html, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "echarts")

	png, err := os.ReadFile(pngPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestRunErrors(t *testing.T) {
	path := writeDataset(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing method flag", []string{"run", "--dataset", path}},
		{"missing dataset file", []string{"run", "--dataset", filepath.Join(t.TempDir(), "none.csv"), "--method", "mean", "--mock"}},
		{"unknown method", []string{"run", "--dataset", path, "--method", "nope", "--mock"}},
		{"unreachable service", []string{"run", "--dataset", path, "--method", "mean", "--analytics-url", "http://127.0.0.1:1", "--timeout", "1s"}},
		{"unknown sub-method", []string{"run", "--dataset", path, "--method", "correlation-matrix", "--sub-method", "kendall", "--mock"}},
		{"bad format", []string{"run", "--dataset", path, "--method", "mean", "--mock", "--format", "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestRunYAML(t *testing.T) {
	path := writeDataset(t)

	out, err := execute(t, "run", "--dataset", path, "--method", "mean", "--mock", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "method: mean")
	assert.Contains(t, out, "archetype: bar")
}

func TestParams(t *testing.T) {
	m, ok := catalog.Lookup("correlation-matrix")
	require.True(t, ok)
	assert.Equal(t, []string{"column[]", "method"}, params(m.Requirements))

	m, ok = catalog.Lookup("fill-missing-with")
	require.True(t, ok)
	assert.Contains(t, params(m.Requirements), "default_value")
}

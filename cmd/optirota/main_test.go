package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMap = "../../pkg/osmparser/testdata/three_nodes.json"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--map", testMap, "--log-level", "error"))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestStatsCommand(t *testing.T) {
	out, err := execute(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "nodes:                      3")
	assert.Contains(t, out, "edges:                      4")
	assert.Contains(t, out, "strongly connected comps:   1")
	assert.Contains(t, out, "dangling pairs skipped:     1")
}

func TestRouteCommand(t *testing.T) {
	geo := filepath.Join(t.TempDir(), "route.geojson")
	out, err := execute(t, "route", "--source", "1", "--destination", "3", "--algorithm", "astar", "--geojson", geo)
	require.NoError(t, err)
	assert.Contains(t, out, "[astar] distance 222.39 m")
	assert.Contains(t, out, "[astar] path [1 2 3]")

	body, err := os.ReadFile(geo)
	require.NoError(t, err)
	assert.Contains(t, string(body), "FeatureCollection")
}

func TestRouteCommandRandom(t *testing.T) {
	out, err := execute(t, "route", "--random", "--seed", "42", "--geojson", "")
	require.NoError(t, err)
	assert.Contains(t, out, "random pair (seed 42)")
	assert.Contains(t, out, "dijkstra and astar returned the same path")
}

func TestRouteCommandUnknownNode(t *testing.T) {
	out, err := execute(t, "route", "--random=false", "--source", "1", "--destination", "99", "--algorithm", "dijkstra",
		"--geojson", "")
	require.Error(t, err)
	assert.Contains(t, out, "[dijkstra] no path found from 1 to 99")
}

func TestAnalyzeCommand(t *testing.T) {
	dir := t.TempDir()
	results := filepath.Join(dir, "results.json")
	reportFile := filepath.Join(dir, "report.txt")

	out, err := execute(t, "analyze", "--algorithm", "dijkstra", "--workers", "2", "--results", results,
		"--report", reportFile)
	require.NoError(t, err)
	assert.Contains(t, out, "BEST STARTING POINT: 2")

	body, err := os.ReadFile(results)
	require.NoError(t, err)
	var parsed map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &parsed))
	assert.Len(t, parsed, 3)
	assert.Contains(t, parsed, "2")

	text, err := os.ReadFile(reportFile)
	require.NoError(t, err)
	assert.Contains(t, string(text), "Point 2")
}

func TestAnalyzeCommandUnknownAlgorithm(t *testing.T) {
	_, err := execute(t, "analyze", "--algorithm", "bellman", "--results", "", "--report", "")
	assert.Error(t, err)
}

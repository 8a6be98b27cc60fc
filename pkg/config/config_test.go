package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mindburn-Labs/sortbench/pkg/cases"
	"github.com/Mindburn-Labs/sortbench/pkg/config"
	"github.com/Mindburn-Labs/sortbench/pkg/sorting"
)

var envKeys = []string{
	"SORTBENCH_RESULTS", "SORTBENCH_SINK", "SORTBENCH_SQLITE_PATH", "SORTBENCH_DATABASE_URL",
	"SORTBENCH_REDIS_ADDR", "SORTBENCH_REDIS_PASSWORD", "SORTBENCH_REDIS_DB", "SORTBENCH_REDIS_KEY",
	"SORTBENCH_QUADRATIC_LIMIT", "SORTBENCH_MAX_DEPTH", "SORTBENCH_SEED",
	"SORTBENCH_OTEL_ENABLED", "SORTBENCH_OTLP_ENDPOINT", "SORTBENCH_OTLP_INSECURE",
	"SORTBENCH_LOG_LEVEL", "SORTBENCH_LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := config.Load()

	assert.Equal(t, "results.csv", cfg.ResultsPath)
	assert.Equal(t, "csv", cfg.Sink)
	assert.Equal(t, 20000, cfg.QuadraticLimit)
	assert.Equal(t, 300000, cfg.MaxDepth)
	assert.Nil(t, cfg.Seed)
	assert.False(t, cfg.OTelEnabled)
	assert.Equal(t, "WARN", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SORTBENCH_RESULTS", "/tmp/out.csv")
	t.Setenv("SORTBENCH_SINK", "SQLite")
	t.Setenv("SORTBENCH_QUADRATIC_LIMIT", "5000")
	t.Setenv("SORTBENCH_MAX_DEPTH", "1000")
	t.Setenv("SORTBENCH_SEED", "42")
	t.Setenv("SORTBENCH_REDIS_DB", "3")
	t.Setenv("SORTBENCH_OTEL_ENABLED", "true")
	t.Setenv("SORTBENCH_LOG_LEVEL", "debug")

	cfg := config.Load()

	assert.Equal(t, "/tmp/out.csv", cfg.ResultsPath)
	assert.Equal(t, "sqlite", cfg.Sink)
	assert.Equal(t, 5000, cfg.QuadraticLimit)
	assert.Equal(t, 1000, cfg.MaxDepth)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, uint64(42), *cfg.Seed)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.OTelEnabled)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
}

func TestLoad_MalformedNumbersUseDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SORTBENCH_QUADRATIC_LIMIT", "lots")
	t.Setenv("SORTBENCH_MAX_DEPTH", "-4")
	t.Setenv("SORTBENCH_SEED", "not-a-seed")

	cfg := config.Load()

	assert.Equal(t, config.DefaultQuadraticLimit, cfg.QuadraticLimit)
	assert.Equal(t, config.DefaultMaxDepth, cfg.MaxDepth)
	assert.Nil(t, cfg.Seed)
}

const validPlan = `
name: nightly
seed: 7
runs:
  - algorithm: bubble
    case: worst
    sizes: [100, 1000]
  - algorithm: Quick Sort
    case: "1"
`

func TestParsePlan(t *testing.T) {
	plan, err := config.ParsePlan([]byte(validPlan))
	require.NoError(t, err)
	assert.Equal(t, "nightly", plan.Name)
	require.NotNil(t, plan.Seed)
	assert.Equal(t, uint64(7), *plan.Seed)
	require.Len(t, plan.Runs, 2)
	assert.Equal(t, []int{100, 1000}, plan.Runs[0].Sizes)
	assert.Empty(t, plan.Runs[1].Sizes)

	alg, c, err := plan.Runs[1].Resolve()
	require.NoError(t, err)
	assert.Equal(t, sorting.Quick, alg)
	assert.Equal(t, cases.Best, c)
}

func TestParsePlan_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing runs", "name: x\n"},
		{"empty runs", "runs: []\n"},
		{"missing case", "runs:\n  - algorithm: merge\n"},
		{"negative size", "runs:\n  - algorithm: merge\n    case: best\n    sizes: [-1]\n"},
		{"string size", "runs:\n  - algorithm: merge\n    case: best\n    sizes: [ten]\n"},
		{"unknown field", "runs:\n  - algorithm: merge\n    case: best\n    parallel: true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.ParsePlan([]byte(tt.doc))
			require.ErrorContains(t, err, "schema validation failed")
		})
	}
}

func TestParsePlan_UnknownNames(t *testing.T) {
	_, err := config.ParsePlan([]byte("runs:\n  - algorithm: heap\n    case: best\n"))
	require.ErrorIs(t, err, sorting.ErrUnknownAlgorithm)

	_, err = config.ParsePlan([]byte("runs:\n  - algorithm: heap sort\n    case: typical\n"))
	require.Error(t, err)

	_, err = config.ParsePlan([]byte("runs:\n  - algorithm: merge\n    case: typical\n"))
	require.ErrorIs(t, err, cases.ErrUnknownCase)
}

func TestParsePlan_BadYAML(t *testing.T) {
	_, err := config.ParsePlan([]byte("runs: [\n"))
	require.ErrorContains(t, err, "parse yaml")
}

func TestLoadPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validPlan), 0o600))

	plan, err := config.LoadPlan(path)
	require.NoError(t, err)
	require.Len(t, plan.Runs, 2)

	_, err = config.LoadPlan(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

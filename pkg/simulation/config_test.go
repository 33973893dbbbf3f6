package simulation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, flock.DefaultConfig(), cfg.FlockConfig())
}

func TestLoadConfig_JSON(t *testing.T) {
	path := writeFile(t, "flock.json", `{
		"population": 12,
		"worldWidth": 640,
		"worldHeight": 480,
		"separation": 20,
		"cohesion": 800,
		"seed": 7
	}`)

	cfg, err := LoadConfig(path, "")
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Population)
	assert.Equal(t, flock.NewConfig(20, 100, 800, 4, 640, 480), cfg.FlockConfig())
	assert.Equal(t, uint64(7), cfg.Seed)
	// untouched fields keep their defaults
	assert.Equal(t, 60, cfg.TickRate)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_YAML(t *testing.T) {
	path := writeFile(t, "flock.yaml", `
population: 3
worldWidth: 500
worldHeight: 300
limit: 2.5
tickRate: 0
logLevel: debug
`)

	cfg, err := LoadConfig(path, "")
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Population)
	assert.Equal(t, 2.5, cfg.Limit)
	assert.Equal(t, 0, cfg.TickRate)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_RepositoryExamples(t *testing.T) {
	for _, name := range []string{"flock.json", "flock.yaml"} {
		t.Run(name, func(t *testing.T) {
			cfg, err := LoadConfig(filepath.Join("..", "..", "configs", name), filepath.Join("..", "..", "configs", "flock.schema.json"))
			require.NoError(t, err)
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestEmbeddedSchemaMatchesRepositoryCopy(t *testing.T) {
	onDisk, err := os.ReadFile(filepath.Join("..", "..", "configs", "flock.schema.json"))
	require.NoError(t, err)
	assert.Equal(t, string(embeddedSchema), string(onDisk), "configs/flock.schema.json must stay in sync with the embedded schema")
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		contains string
	}{
		{"zero cohesion", "c.json", `{"cohesion": 0}`, "config validation failed"},
		{"unknown field", "c.json", `{"speed": 3}`, "config validation failed"},
		{"wrong type", "c.yaml", "population: many\n", "config validation failed"},
		{"bad log level", "c.json", `{"logLevel": "loud"}`, "config validation failed"},
		{"broken json", "c.json", `{"population": `, "failed to decode config json"},
		{"broken yaml", "c.yml", "population: [1,\n", "failed to decode config yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, tt.file, tt.content), "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoadConfig_UnsupportedFormat(t *testing.T) {
	_, err := LoadConfig(writeFile(t, "flock.toml", "population = 3\n"), "")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"), "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Alignment = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	assert.ErrorIs(t, cfg.Validate(), flock.ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.Population = -1
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestConfig_NewFlock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Population = 30
	cfg.Seed = 99

	a, b := cfg.NewFlock(), cfg.NewFlock()
	assert.Equal(t, 30, a.Len())
	assert.Equal(t, cfg.FlockConfig(), a.Config())
	assert.Equal(t, a.Checksum(), b.Checksum(), "same seed must place agents identically")
}

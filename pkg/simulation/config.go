package simulation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/flock"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed flock.schema.json
var embeddedSchema []byte

const embeddedSchemaURL = "flock.schema.json"

var (
	// ErrInvalidConfig wraps every semantic validation failure.
	ErrInvalidConfig     = errors.New("invalid simulation config")
	// ErrUnsupportedFormat is returned for config files that are neither JSON nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// Config describes one simulation run.
type Config struct {
	// Population is fixed for the lifetime of the flock
	Population int `json:"population" yaml:"population"`

	// World Dimensions
	WorldWidth  int `json:"worldWidth" yaml:"worldWidth"`
	WorldHeight int `json:"worldHeight" yaml:"worldHeight"`

	// Flocking rules
	Separation float64 `json:"separation" yaml:"separation"` // Repulsion radius
	Alignment  float64 `json:"alignment" yaml:"alignment"`   // Divisor of the neighbors' velocity sum
	Cohesion   float64 `json:"cohesion" yaml:"cohesion"`     // Divisor of the neighbors' position sum
	Limit      float64 `json:"limit" yaml:"limit"`           // Max speed

	// Driver
	TickRate int    `json:"tickRate" yaml:"tickRate"` // Ticks per second, 0 = as fast as possible
	Seed     uint64 `json:"seed" yaml:"seed"`         // 0 = seeded from the clock
	LogLevel string `json:"logLevel" yaml:"logLevel"`
}

// DefaultConfig returns a valid config built on flock.DefaultConfig.
func DefaultConfig() *Config {
	def := flock.DefaultConfig()
	return &Config{
		Population:  250,
		WorldWidth:  int(def.Width),
		WorldHeight: int(def.Height),
		Separation:  def.Separation,
		Alignment:   def.Alignment,
		Cohesion:    def.Cohesion,
		Limit:       def.Limit,
		TickRate:    60,
		Seed:        0,
		LogLevel:    "info",
	}
}

// FlockConfig projects the rule parameters onto a flock.Config.
func (c *Config) FlockConfig() flock.Config {
	return flock.NewConfig(c.Separation, c.Alignment, c.Cohesion, c.Limit,
		float64(c.WorldWidth), float64(c.WorldHeight))
}

// RandomSource returns the generator used to place the agents.
// A zero Seed draws a fresh one from the clock.
func (c *Config) RandomSource() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewFlock creates the randomly placed population described by the config.
func (c *Config) NewFlock() *flock.Flock {
	return flock.NewRandom(uint(c.Population), uint(c.WorldWidth), uint(c.WorldHeight),
		c.Separation, c.Alignment, c.Cohesion, c.Limit, c.RandomSource())
}

// Validate checks the invariants the schema cannot express.
func (c *Config) Validate() error {
	if c.Population < 0 {
		return fmt.Errorf("%w: population must be >= 0, got %d", ErrInvalidConfig, c.Population)
	}
	if c.TickRate < 0 {
		return fmt.Errorf("%w: tickRate must be >= 0, got %d", ErrInvalidConfig, c.TickRate)
	}
	if err := c.FlockConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// LoadConfig loads configuration from a JSON or YAML file and validates it
// against the schema. An empty schemaFile selects the embedded schema.
// Fields missing from the file keep their DefaultConfig value.
func LoadConfig(configFile string, schemaFile string) (*Config, error) {
	// 1. Compile Schema
	sch, err := compileSchema(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	// 2. Read Config File, normalized to JSON
	raw, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	doc, err := toJSON(configFile, raw)
	if err != nil {
		return nil, err
	}

	// 3. Validate
	var v interface{}
	if err := json.Unmarshal(doc, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 4. Unmarshal into Struct
	cfg := DefaultConfig()
	if err := json.Unmarshal(doc, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func compileSchema(schemaFile string) (*jsonschema.Schema, error) {
	if schemaFile != "" {
		return jsonschema.Compile(schemaFile)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(embeddedSchemaURL, bytes.NewReader(embeddedSchema)); err != nil {
		return nil, err
	}
	return compiler.Compile(embeddedSchemaURL)
}

// toJSON converts a YAML document to JSON so both formats share one
// validation path. JSON documents are returned untouched.
func toJSON(configFile string, raw []byte) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".json":
		return raw, nil
	case ".yaml", ".yml":
		var doc map[string]interface{}
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode config yaml: %w", err)
		}
		if doc == nil {
			doc = map[string]interface{}{}
		}
		out, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to convert config yaml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(configFile))
	}
}

// Package config loads map generation settings from YAML and rejects
// invalid values before they reach the generator.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/cellmap/internal/world"
)

// Validation errors. Validate wraps these with the offending field.
var (
	ErrInvalidSize        = errors.New("invalid map size")
	ErrInvalidProbability = errors.New("probability outside [0, 1]")
	ErrInvalidFactor      = errors.New("negative factor")
	ErrInvalidTopology    = errors.New("invalid topology")
)

// Config holds all generator configuration
type Config struct {
	Map        MapConfig        `yaml:"map"`
	Generation GenerationConfig `yaml:"generation"`
	Relief     ReliefConfig     `yaml:"relief"`
	Catalog    CatalogConfig    `yaml:"catalog"`
}

// MapConfig holds the grid dimensions
type MapConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// GenerationConfig mirrors world.GenParams with YAML names
type GenerationConfig struct {
	MountainFactor       float64 `yaml:"mountain_factor"`
	MountainSpreadFactor float64 `yaml:"mountain_spread_factor"`
	LakeFactor           float64 `yaml:"lake_factor"`
	LakeSpreadFactor     float64 `yaml:"lake_spread_factor"`

	SmoothingMountainFactor   int `yaml:"smoothing_mountain_factor"`
	SmoothingLakeFactor       int `yaml:"smoothing_lake_factor"`
	WaterSmoothingPasses      int `yaml:"water_smoothing_passes"`
	WaterSmoothingPass3Factor int `yaml:"water_smoothing_pass3_factor"`

	GenerationTopology string `yaml:"generation_topology"` // "square" or "cube"
	SmoothingTopology  string `yaml:"smoothing_topology"`  // "square" or "cube"

	Seed int64 `yaml:"seed"` // 0 = random
}

// ReliefConfig holds elevation noise settings
type ReliefConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Octaves     int     `yaml:"octaves"`
	Frequency   float64 `yaml:"frequency"`
	Persistence float64 `yaml:"persistence"`
}

// CatalogConfig holds run catalog settings
type CatalogConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	p := world.DefaultGenParams()
	r := world.DefaultReliefConfig()
	return &Config{
		Map: MapConfig{Width: 200, Height: 120},
		Generation: GenerationConfig{
			MountainFactor:            p.MountainFactor,
			MountainSpreadFactor:      p.MountainSpreadFactor,
			LakeFactor:                p.LakeFactor,
			LakeSpreadFactor:          p.LakeSpreadFactor,
			SmoothingMountainFactor:   p.SmoothingMountainFactor,
			SmoothingLakeFactor:       p.SmoothingLakeFactor,
			WaterSmoothingPasses:      p.WaterSmoothingPasses,
			WaterSmoothingPass3Factor: p.WaterSmoothingPass3Factor,
			GenerationTopology:        p.GenerationTopology.String(),
			SmoothingTopology:         p.SmoothingTopology.String(),
			Seed:                      p.Seed,
		},
		Relief: ReliefConfig{
			Enabled:     false,
			Octaves:     r.Octaves,
			Frequency:   r.Frequency,
			Persistence: r.Persistence,
		},
		Catalog: CatalogConfig{
			Enabled: false,
			Path:    "data/cellmap.db",
		},
	}
}

// Load reads configuration from a YAML file. Fields missing from the file
// keep their defaults. The result is validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration on top of the defaults and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Map.Width <= 0 {
		errs = append(errs, fmt.Errorf("map.width %d: %w", c.Map.Width, ErrInvalidSize))
	}
	if c.Map.Height <= 0 {
		errs = append(errs, fmt.Errorf("map.height %d: %w", c.Map.Height, ErrInvalidSize))
	}

	g := c.Generation
	probabilities := []struct {
		name  string
		value float64
	}{
		{"generation.mountain_factor", g.MountainFactor},
		{"generation.mountain_spread_factor", g.MountainSpreadFactor},
		{"generation.lake_factor", g.LakeFactor},
		{"generation.lake_spread_factor", g.LakeSpreadFactor},
	}
	for _, pr := range probabilities {
		if pr.value < 0 || pr.value > 1 {
			errs = append(errs, fmt.Errorf("%s %v: %w", pr.name, pr.value, ErrInvalidProbability))
		}
	}

	factors := []struct {
		name  string
		value int
	}{
		{"generation.smoothing_mountain_factor", g.SmoothingMountainFactor},
		{"generation.smoothing_lake_factor", g.SmoothingLakeFactor},
		{"generation.water_smoothing_passes", g.WaterSmoothingPasses},
		{"generation.water_smoothing_pass3_factor", g.WaterSmoothingPass3Factor},
	}
	for _, f := range factors {
		if f.value < 0 {
			errs = append(errs, fmt.Errorf("%s %d: %w", f.name, f.value, ErrInvalidFactor))
		}
	}

	if _, err := world.ParseTopology(g.GenerationTopology); err != nil {
		errs = append(errs, fmt.Errorf("generation.generation_topology: %w: %v", ErrInvalidTopology, err))
	}
	if _, err := world.ParseTopology(g.SmoothingTopology); err != nil {
		errs = append(errs, fmt.Errorf("generation.smoothing_topology: %w: %v", ErrInvalidTopology, err))
	}

	if c.Relief.Enabled && c.Relief.Octaves <= 0 {
		errs = append(errs, fmt.Errorf("relief.octaves %d: %w", c.Relief.Octaves, ErrInvalidFactor))
	}
	if c.Catalog.Enabled && c.Catalog.Path == "" {
		errs = append(errs, errors.New("catalog.path is required when the catalog is enabled"))
	}

	return errors.Join(errs...)
}

// GenParams converts the generation section. Call Validate first;
// unknown topologies fall back to square.
func (c *Config) GenParams() world.GenParams {
	g := c.Generation
	genTopo, _ := world.ParseTopology(g.GenerationTopology)
	smoothTopo, _ := world.ParseTopology(g.SmoothingTopology)
	return world.GenParams{
		MountainFactor:            g.MountainFactor,
		MountainSpreadFactor:      g.MountainSpreadFactor,
		LakeFactor:                g.LakeFactor,
		LakeSpreadFactor:          g.LakeSpreadFactor,
		SmoothingMountainFactor:   g.SmoothingMountainFactor,
		SmoothingLakeFactor:       g.SmoothingLakeFactor,
		WaterSmoothingPasses:      g.WaterSmoothingPasses,
		WaterSmoothingPass3Factor: g.WaterSmoothingPass3Factor,
		GenerationTopology:        genTopo,
		SmoothingTopology:         smoothTopo,
		Seed:                      g.Seed,
	}
}

// ReliefParams converts the relief section.
func (c *Config) ReliefParams() world.ReliefConfig {
	return world.ReliefConfig{
		Octaves:     c.Relief.Octaves,
		Frequency:   c.Relief.Frequency,
		Persistence: c.Relief.Persistence,
	}
}

// SetGenParams copies p into the generation section, e.g. when replaying a stored run.
func (c *Config) SetGenParams(p world.GenParams) {
	c.Generation = GenerationConfig{
		MountainFactor:            p.MountainFactor,
		MountainSpreadFactor:      p.MountainSpreadFactor,
		LakeFactor:                p.LakeFactor,
		LakeSpreadFactor:          p.LakeSpreadFactor,
		SmoothingMountainFactor:   p.SmoothingMountainFactor,
		SmoothingLakeFactor:       p.SmoothingLakeFactor,
		WaterSmoothingPasses:      p.WaterSmoothingPasses,
		WaterSmoothingPass3Factor: p.WaterSmoothingPass3Factor,
		GenerationTopology:        p.GenerationTopology.String(),
		SmoothingTopology:         p.SmoothingTopology.String(),
		Seed:                      p.Seed,
	}
}

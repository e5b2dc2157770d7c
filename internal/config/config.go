// Package config loads and saves plant and root-type parameter files and
// applies them to a rootbox engine.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/timokoch/CRootBox/internal/rootbox"
)

const (
	DefaultDt         = 1.0
	DefaultSimTime    = 30.0
	DefaultSeedDepth  = 3.0
	DefaultResolution = 0.25
)

type Config struct {
	Name      string           `yaml:"name"`
	Seed      int64            `yaml:"seed"`
	Plant     PlantConfig      `yaml:"plant"`
	RootTypes []RootTypeConfig `yaml:"root_types"`
}

type PlantConfig struct {
	SeedDepth float64 `yaml:"seed_depth"`
	SimTime   float64 `yaml:"sim_time"`
	Dt        float64 `yaml:"dt"`

	BasalRoots      int     `yaml:"basal_roots"`
	FirstBasal      float64 `yaml:"first_basal"`
	BasalDelay      float64 `yaml:"basal_delay"`
	ShootborneRoots int     `yaml:"shootborne_roots"`
	FirstShootborne float64 `yaml:"first_shootborne"`
	ShootborneDelay float64 `yaml:"shootborne_delay"`
	CrownDelay      float64 `yaml:"crown_delay"`
	RootsPerCrown   int     `yaml:"roots_per_crown"`
	CrownSpacing    float64 `yaml:"crown_spacing"`

	BasalType      int `yaml:"basal_type"`
	ShootborneType int `yaml:"shootborne_type"`
}

type RootTypeConfig struct {
	Type int    `yaml:"type"`
	Name string `yaml:"name"`

	BasalZone        float64 `yaml:"basal_zone"`
	BasalZoneSD      float64 `yaml:"basal_zone_sd"`
	ApicalZone       float64 `yaml:"apical_zone"`
	ApicalZoneSD     float64 `yaml:"apical_zone_sd"`
	LateralSpacing   float64 `yaml:"lateral_spacing"`
	LateralSpacingSD float64 `yaml:"lateral_spacing_sd"`
	MaxLaterals      float64 `yaml:"max_laterals"`
	MaxLateralsSD    float64 `yaml:"max_laterals_sd"`
	GrowthRate       float64 `yaml:"growth_rate"`
	GrowthRateSD     float64 `yaml:"growth_rate_sd"`
	Radius           float64 `yaml:"radius"`
	RadiusSD         float64 `yaml:"radius_sd"`
	InsertionAngle   float64 `yaml:"insertion_angle"`
	InsertionAngleSD float64 `yaml:"insertion_angle_sd"`
	LifeTime         float64 `yaml:"life_time"`
	LifeTimeSD       float64 `yaml:"life_time_sd"`
	Resolution       float64 `yaml:"resolution"`

	Tropism       string  `yaml:"tropism"`
	TropismTrials float64 `yaml:"tropism_trials"`
	TropismSigma  float64 `yaml:"tropism_sigma"`
	Growth        string  `yaml:"growth"`

	Successors []SuccessorConfig `yaml:"successors"`
}

type SuccessorConfig struct {
	Type int     `yaml:"type"`
	P    float64 `yaml:"p"`
}

// DefaultConfig is a single unbranched taproot.
func DefaultConfig() *Config {
	return &Config{
		Name: "taproot",
		Seed: 1,
		Plant: PlantConfig{
			SeedDepth:      DefaultSeedDepth,
			SimTime:        DefaultSimTime,
			Dt:             DefaultDt,
			BasalDelay:     1,
			RootsPerCrown:  3,
			CrownSpacing:   1,
			CrownDelay:     5,
			BasalType:      4,
			ShootborneType: 5,
		},
		RootTypes: []RootTypeConfig{
			{
				Type:           1,
				Name:           "taproot",
				ApicalZone:     100,
				GrowthRate:     2,
				Radius:         0.2,
				InsertionAngle: 1.22,
				Resolution:     DefaultResolution,
				Tropism:        "gravi",
				TropismTrials:  1.5,
				TropismSigma:   0.2,
				Growth:         "negexp",
			},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.RootTypes = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Apply configures a root system from the file: parameter tables, plant
// schedule and seed. Geometry and soil stay whatever the caller set.
func (c *Config) Apply(rs *rootbox.RootSystem) error {
	if len(c.RootTypes) == 0 {
		return fmt.Errorf("config %q: no root types", c.Name)
	}
	known := make(map[int]bool, len(c.RootTypes))
	for _, rt := range c.RootTypes {
		known[rt.Type] = true
	}
	for _, rt := range c.RootTypes {
		for _, s := range rt.Successors {
			if !known[s.Type] {
				return fmt.Errorf("config %q: root type %d: successor type %d not defined",
					c.Name, rt.Type, s.Type)
			}
		}
		tp, err := rt.typeParameter()
		if err != nil {
			return fmt.Errorf("config %q: %w", c.Name, err)
		}
		if err := rs.SetTypeParameter(tp); err != nil {
			return fmt.Errorf("config %q: %w", c.Name, err)
		}
	}
	rs.SetPlantParameter(c.plantParameter())
	rs.SetSeed(uint64(c.Seed))
	return nil
}

func (c *Config) plantParameter() rootbox.PlantParameter {
	p := rootbox.DefaultPlantParameter()
	p.SeedPos = rootbox.Vector3{Z: -c.Plant.SeedDepth}
	p.FirstB = c.Plant.FirstBasal
	p.DelayB = c.Plant.BasalDelay
	p.FirstSB = c.Plant.FirstShootborne
	p.DelaySB = c.Plant.ShootborneDelay
	p.DelayRC = c.Plant.CrownDelay
	p.NC = c.Plant.RootsPerCrown
	p.NZ = c.Plant.CrownSpacing
	p.SimTime = c.Plant.SimTime
	p.Dt = c.Plant.Dt
	if c.Plant.BasalType > 0 {
		p.BasalType = c.Plant.BasalType
	}
	if c.Plant.ShootborneType > 0 {
		p.ShootborneType = c.Plant.ShootborneType
	}
	return p
}

func (rt *RootTypeConfig) typeParameter() (*rootbox.TypeParameter, error) {
	tropism, err := parseTropism(rt.Tropism)
	if err != nil {
		return nil, fmt.Errorf("root type %d: %w", rt.Type, err)
	}
	growth, err := parseGrowth(rt.Growth)
	if err != nil {
		return nil, fmt.Errorf("root type %d: %w", rt.Type, err)
	}
	tp := rootbox.DefaultTypeParameter(rt.Type)
	if rt.Name != "" {
		tp.Name = rt.Name
	}
	tp.LB, tp.LBs = rt.BasalZone, rt.BasalZoneSD
	tp.LA, tp.LAs = rt.ApicalZone, rt.ApicalZoneSD
	tp.LN, tp.LNs = rt.LateralSpacing, rt.LateralSpacingSD
	tp.Nob, tp.Nobs = rt.MaxLaterals, rt.MaxLateralsSD
	tp.R, tp.Rs = rt.GrowthRate, rt.GrowthRateSD
	tp.A, tp.As = rt.Radius, rt.RadiusSD
	tp.Theta, tp.Thetas = rt.InsertionAngle, rt.InsertionAngleSD
	if rt.LifeTime > 0 {
		tp.RLT, tp.RLTs = rt.LifeTime, rt.LifeTimeSD
	}
	if rt.Resolution > 0 {
		tp.Dx = rt.Resolution
	}
	tp.TropismKind = tropism
	if rt.TropismTrials > 0 {
		tp.TropismN = rt.TropismTrials
	}
	tp.TropismSigma = rt.TropismSigma
	tp.GrowthKind = growth
	tp.Successors = nil
	tp.SuccessorP = nil
	for _, s := range rt.Successors {
		tp.Successors = append(tp.Successors, s.Type)
		tp.SuccessorP = append(tp.SuccessorP, s.P)
	}
	return tp, nil
}

func parseTropism(name string) (int, error) {
	switch name {
	case "plagio":
		return rootbox.TropismPlagio, nil
	case "", "gravi":
		return rootbox.TropismGravi, nil
	case "exo":
		return rootbox.TropismExo, nil
	case "hydro":
		return rootbox.TropismHydro, nil
	}
	return 0, fmt.Errorf("unknown tropism %q", name)
}

func parseGrowth(name string) (int, error) {
	switch name {
	case "", "negexp":
		return rootbox.GrowthNegExp, nil
	case "linear":
		return rootbox.GrowthLinear, nil
	}
	return 0, fmt.Errorf("unknown growth function %q", name)
}

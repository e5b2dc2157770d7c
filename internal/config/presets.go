package config

import "sort"

// Presets are ready-made plant parameter sets.
var Presets = map[string]*Config{
	"taproot": DefaultConfig(),
	"anagallis": {
		Name: "anagallis",
		Seed: 1,
		Plant: PlantConfig{
			SeedDepth:      3,
			SimTime:        60,
			Dt:             1,
			BasalRoots:     4,
			FirstBasal:     3,
			BasalDelay:     2,
			CrownDelay:     5,
			RootsPerCrown:  3,
			CrownSpacing:   1,
			BasalType:      4,
			ShootborneType: 5,
		},
		RootTypes: []RootTypeConfig{
			{
				Type: 1, Name: "taproot",
				BasalZone: 2.6, BasalZoneSD: 0.5, ApicalZone: 6.2, ApicalZoneSD: 1.2,
				LateralSpacing: 0.77, LateralSpacingSD: 0.15, MaxLaterals: 40, MaxLateralsSD: 6,
				GrowthRate: 1.5, GrowthRateSD: 0.3, Radius: 0.08, RadiusSD: 0.01, Resolution: 0.25,
				Tropism: "gravi", TropismTrials: 1.5, TropismSigma: 0.1, Growth: "negexp",
				Successors: []SuccessorConfig{{Type: 2, P: 1}},
			},
			{
				Type: 2, Name: "lateral",
				BasalZone: 0.4, BasalZoneSD: 0.1, ApicalZone: 2.9, ApicalZoneSD: 0.6,
				LateralSpacing: 0.6, LateralSpacingSD: 0.2, MaxLaterals: 6, MaxLateralsSD: 2,
				GrowthRate: 0.8, GrowthRateSD: 0.16, Radius: 0.04, RadiusSD: 0.005,
				InsertionAngle: 1.22, InsertionAngleSD: 0.2, Resolution: 0.25,
				Tropism: "gravi", TropismTrials: 1, TropismSigma: 0.3, Growth: "negexp",
				Successors: []SuccessorConfig{{Type: 3, P: 1}},
			},
			{
				Type: 3, Name: "fine lateral",
				ApicalZone: 1.8, ApicalZoneSD: 0.4, GrowthRate: 0.4, GrowthRateSD: 0.1,
				Radius: 0.02, InsertionAngle: 1.35, InsertionAngleSD: 0.2, Resolution: 0.25,
				Tropism: "exo", TropismTrials: 1, TropismSigma: 0.4, Growth: "negexp",
			},
			{
				Type: 4, Name: "basal",
				BasalZone: 2.6, BasalZoneSD: 0.5, ApicalZone: 6.2, ApicalZoneSD: 1.2,
				LateralSpacing: 0.77, LateralSpacingSD: 0.15, MaxLaterals: 30, MaxLateralsSD: 5,
				GrowthRate: 1.2, GrowthRateSD: 0.24, Radius: 0.06,
				InsertionAngle: 1.4, InsertionAngleSD: 0.1, Resolution: 0.25,
				Tropism: "gravi", TropismTrials: 1.5, TropismSigma: 0.2, Growth: "negexp",
				Successors: []SuccessorConfig{{Type: 2, P: 1}},
			},
			{
				Type: 5, Name: "shootborne",
				BasalZone: 2.6, ApicalZone: 6.2, LateralSpacing: 0.77, MaxLaterals: 30,
				GrowthRate: 1.2, Radius: 0.06, InsertionAngle: 1.4, Resolution: 0.25,
				Tropism: "gravi", TropismTrials: 1.5, TropismSigma: 0.2, Growth: "negexp",
				Successors: []SuccessorConfig{{Type: 2, P: 1}},
			},
		},
	},
	"maize": {
		Name: "maize",
		Seed: 2,
		Plant: PlantConfig{
			SeedDepth:       3,
			SimTime:         45,
			Dt:              1,
			BasalRoots:      5,
			FirstBasal:      1,
			BasalDelay:      1.5,
			ShootborneRoots: 9,
			FirstShootborne: 8,
			ShootborneDelay: 1,
			CrownDelay:      4,
			RootsPerCrown:   3,
			CrownSpacing:    0.8,
			BasalType:       4,
			ShootborneType:  5,
		},
		RootTypes: []RootTypeConfig{
			{
				Type: 1, Name: "primary",
				BasalZone: 4, BasalZoneSD: 0.6, ApicalZone: 12, ApicalZoneSD: 2,
				LateralSpacing: 1.1, LateralSpacingSD: 0.25, MaxLaterals: 50, MaxLateralsSD: 8,
				GrowthRate: 3, GrowthRateSD: 0.5, Radius: 0.12, Resolution: 0.5,
				Tropism: "gravi", TropismTrials: 2, TropismSigma: 0.15, Growth: "negexp",
				Successors: []SuccessorConfig{{Type: 2, P: 1}},
			},
			{
				Type: 2, Name: "lateral",
				ApicalZone: 4, ApicalZoneSD: 1, GrowthRate: 1, GrowthRateSD: 0.2,
				Radius: 0.03, InsertionAngle: 1.4, InsertionAngleSD: 0.25,
				LifeTime: 25, LifeTimeSD: 5, Resolution: 0.3,
				Tropism: "plagio", TropismTrials: 1, TropismSigma: 0.35, Growth: "linear",
			},
			{
				Type: 4, Name: "seminal",
				BasalZone: 4, ApicalZone: 12, LateralSpacing: 1.1, MaxLaterals: 35,
				GrowthRate: 2.2, GrowthRateSD: 0.4, Radius: 0.09,
				InsertionAngle: 1.3, InsertionAngleSD: 0.15, Resolution: 0.5,
				Tropism: "gravi", TropismTrials: 2, TropismSigma: 0.25, Growth: "negexp",
				Successors: []SuccessorConfig{{Type: 2, P: 1}},
			},
			{
				Type: 5, Name: "crown",
				BasalZone: 5, ApicalZone: 14, LateralSpacing: 1.3, MaxLaterals: 30,
				GrowthRate: 2.8, GrowthRateSD: 0.4, Radius: 0.11,
				InsertionAngle: 1.2, InsertionAngleSD: 0.15, Resolution: 0.5,
				Tropism: "gravi", TropismTrials: 2, TropismSigma: 0.2, Growth: "negexp",
				Successors: []SuccessorConfig{{Type: 2, P: 1}},
			},
		},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package config

import (
	"path/filepath"
	"testing"

	"github.com/timokoch/CRootBox/internal/rootbox"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Plant.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Plant.SimTime <= 0 {
		t.Error("sim time should be positive")
	}
	if len(cfg.RootTypes) == 0 {
		t.Fatal("expected at least one root type")
	}
	if cfg.RootTypes[0].Type != 1 {
		t.Errorf("expected root type 1, got %d", cfg.RootTypes[0].Type)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plant.yaml")
	cfg := GetPreset("anagallis")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Name != cfg.Name {
		t.Errorf("expected name %q, got %q", cfg.Name, loaded.Name)
	}
	if len(loaded.RootTypes) != len(cfg.RootTypes) {
		t.Errorf("expected %d root types, got %d", len(cfg.RootTypes), len(loaded.RootTypes))
	}
	if loaded.RootTypes[0].GrowthRate != cfg.RootTypes[0].GrowthRate {
		t.Errorf("expected growth rate %f, got %f",
			cfg.RootTypes[0].GrowthRate, loaded.RootTypes[0].GrowthRate)
	}
}

func TestApply(t *testing.T) {
	rs := rootbox.New()
	cfg := GetPreset("anagallis")
	if err := cfg.Apply(rs); err != nil {
		t.Fatalf("apply: %v", err)
	}
	tp, err := rs.TypeParameter(1)
	if err != nil {
		t.Fatalf("type 1 missing after apply: %v", err)
	}
	if tp.Name != "taproot" {
		t.Errorf("expected taproot, got %q", tp.Name)
	}
	if tp.TropismKind != rootbox.TropismGravi {
		t.Errorf("expected gravitropism, got %d", tp.TropismKind)
	}
	if got := rs.PlantParameter().SeedPos.Z; got != -3 {
		t.Errorf("expected seed depth -3, got %f", got)
	}
}

func TestApply_UnknownSuccessor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RootTypes[0].Successors = []SuccessorConfig{{Type: 9, P: 1}}
	if err := cfg.Apply(rootbox.New()); err == nil {
		t.Error("expected error for undefined successor type")
	}
}

func TestApply_NoRootTypes(t *testing.T) {
	cfg := &Config{Name: "empty"}
	if err := cfg.Apply(rootbox.New()); err == nil {
		t.Error("expected error for config without root types")
	}
}

func TestParseTropism(t *testing.T) {
	tests := []struct {
		name string
		want int
		ok   bool
	}{
		{"plagio", rootbox.TropismPlagio, true},
		{"gravi", rootbox.TropismGravi, true},
		{"exo", rootbox.TropismExo, true},
		{"hydro", rootbox.TropismHydro, true},
		{"", rootbox.TropismGravi, true},
		{"sideways", 0, false},
	}
	for _, tt := range tests {
		got, err := parseTropism(tt.name)
		if tt.ok && err != nil {
			t.Errorf("%q: unexpected error %v", tt.name, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("%q: expected error", tt.name)
		}
		if tt.ok && got != tt.want {
			t.Errorf("%q: expected %d, got %d", tt.name, tt.want, got)
		}
	}
}

func TestGetPreset(t *testing.T) {
	if GetPreset("maize") == nil {
		t.Fatal("expected preset, got nil")
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) < 3 {
		t.Errorf("expected at least 3 presets, got %d", len(names))
	}
}

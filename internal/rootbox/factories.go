package rootbox

import "fmt"

// RootFactory builds axis records. The engine assigns the root id and
// registers the record in the arena after Create returns; substitute a
// custom factory to grow specialized axes without touching the engine.
type RootFactory interface {
	Create(rs *RootSystem, t int, heading Vector3, delay float64, parent *Root, pbl float64, pni int) (*Root, error)
}

// TropismFactory builds the per-type tropism strategies at Initialize.
type TropismFactory interface {
	Create(kind int, n, sigma float64, rs *RootSystem) (Tropism, error)
}

// GrowthFunctionFactory builds the per-type growth functions at Initialize.
type GrowthFunctionFactory interface {
	Create(kind int) (GrowthFunction, error)
}

type DefaultRootFactory struct{}

func (DefaultRootFactory) Create(rs *RootSystem, t int, heading Vector3, delay float64, parent *Root, pbl float64, pni int) (*Root, error) {
	tp, ok := rs.params[t]
	if !ok {
		return nil, fmt.Errorf("create root: root type %d not found", t)
	}
	r := &Root{
		Parent:          -1,
		Param:           tp.Realize(rs.rng),
		Age:             -delay,
		Alive:           true,
		Etime:           delay,
		InitialHeading:  heading.Normalized(),
		PBL:             pbl,
		PNI:             pni,
		lastLateralNode: -1,
	}
	if parent != nil {
		r.Parent = parent.ID
		r.Nodes = append(r.Nodes, parent.Nodes[pni]) // share the insertion node
	}
	return r, nil
}

type DefaultTropismFactory struct{}

func (DefaultTropismFactory) Create(kind int, n, sigma float64, rs *RootSystem) (Tropism, error) {
	switch kind {
	case TropismPlagio:
		return NewPlagiotropism(n, sigma, rs.rng, rs.geometry), nil
	case TropismGravi:
		return NewGravitropism(n, sigma, rs.rng, rs.geometry), nil
	case TropismExo:
		return NewExotropism(Vector3{}, n, sigma, rs.rng, rs.geometry), nil
	case TropismHydro:
		return NewHydrotropism(rs.soil, n, sigma, rs.rng, rs.geometry), nil
	}
	return nil, fmt.Errorf("unknown tropism kind %d", kind)
}

type DefaultGrowthFunctionFactory struct{}

func (DefaultGrowthFunctionFactory) Create(kind int) (GrowthFunction, error) {
	switch kind {
	case GrowthNegExp:
		return NegExpGrowth{}, nil
	case GrowthLinear:
		return LinearGrowth{}, nil
	}
	return nil, fmt.Errorf("unknown growth function kind %d", kind)
}

// Package rootbox simulates the architectural development of a branching
// root system: a tree of axes that elongate, bend under tropisms, and
// spawn laterals according to per-type growth rules, optionally confined
// by a boundary and steered by a scalar soil signal.
//
// The engine is a single deterministic sequential process. All stochastic
// decisions draw from one shared [RandomStream], so a fixed seed, the same
// parameters and the same sequence of [RootSystem.Simulate] calls
// reproduce node positions and ids bit for bit. [RootSystem.Push] and
// [RootSystem.Pop] capture and restore the entire mutable state,
// generator included, enabling trial steps that can be rolled back (see
// [RootSystem.SimulateScaled]).
//
// Strategy families are pluggable: [Tropism] picks headings,
// [GrowthFunction] maps age to length, and the factory interfaces
// ([RootFactory], [TropismFactory], [GrowthFunctionFactory]) let callers
// substitute custom variants without subclassing the engine. The
// confining geometry ([SignedDistance]) and the soil signal
// ([ScalarField]) are injected capabilities; both may be absent.
package rootbox

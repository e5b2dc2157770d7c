package rootbox

import (
	"fmt"
	"math"
	"sort"
)

// RootSystem owns the parameter tables, the axis arena, the id counters
// and the random stream, and drives the simulation. Exactly one engine
// owns a given axis tree; all mutation happens through Initialize,
// Simulate and Pop.
type RootSystem struct {
	params map[int]*TypeParameter
	plant  PlantParameter

	arena     []*Root // keyed by root id
	baseRoots []int

	tropisms map[int]Tropism
	growths  map[int]GrowthFunction

	geometry SignedDistance
	soil     ScalarField

	rng *RandomStream

	simtime float64
	rid     int // last allocated root id, -1 before the first
	nid     int // last allocated node id, -1 before the first

	oldNON int // node count at the start of the last Simulate
	oldNOR int // enumerable root count at the start of the last Simulate

	crownNodes     []int
	numberOfCrowns int

	rootsCache []*Root

	rootFactory   RootFactory
	tropismFact   TropismFactory
	growthFact    GrowthFunctionFactory
	initialized   bool
	snapshots     []*systemState
	manualSeed    bool
	overrideTrops map[int]Tropism // set via SetTropism, survives Initialize
}

// New creates an empty engine seeded with 0; call SetSeed for a different
// deterministic stream.
func New() *RootSystem {
	rs := &RootSystem{
		params:        make(map[int]*TypeParameter),
		plant:         DefaultPlantParameter(),
		rng:           NewRandomStream(0),
		rid:           -1,
		nid:           -1,
		overrideTrops: make(map[int]Tropism),
	}
	rs.rootFactory = DefaultRootFactory{}
	rs.tropismFact = DefaultTropismFactory{}
	rs.growthFact = DefaultGrowthFunctionFactory{}
	return rs
}

// SetTypeParameter stores the parameter set under its type id.
func (rs *RootSystem) SetTypeParameter(p *TypeParameter) error {
	if p == nil {
		return fmt.Errorf("set type parameter: nil parameter")
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("set type parameter: %w", err)
	}
	rs.params[p.Type] = p
	return nil
}

// TypeParameter retrieves a parameter set by type id.
func (rs *RootSystem) TypeParameter(t int) (*TypeParameter, error) {
	p, ok := rs.params[t]
	if !ok {
		return nil, fmt.Errorf("root type %d not found", t)
	}
	return p, nil
}

func (rs *RootSystem) SetPlantParameter(p PlantParameter) { rs.plant = p }
func (rs *RootSystem) PlantParameter() PlantParameter     { return rs.plant }

// SetGeometry sets the confining geometry; call before Initialize so the
// tropisms pick it up. nil means unconfined.
func (rs *RootSystem) SetGeometry(g SignedDistance) { rs.geometry = g }

// SetSoil sets the scalar field used by hydrotropism; call before
// Initialize. nil means no signal.
func (rs *RootSystem) SetSoil(f ScalarField) { rs.soil = f }

func (rs *RootSystem) Geometry() SignedDistance { return rs.geometry }
func (rs *RootSystem) Soil() ScalarField        { return rs.soil }

// SetSeed reseeds the shared random stream.
func (rs *RootSystem) SetSeed(seed uint64) {
	rs.manualSeed = true
	rs.rng.SetSeed(seed)
}

// Rand returns a uniformly distributed number in [0,1) from the shared stream.
func (rs *RootSystem) Rand() float64 { return rs.rng.Uniform01() }

// Randn returns a standard normally distributed number from the shared stream.
func (rs *RootSystem) Randn() float64 { return rs.rng.StandardNormal() }

// Stream exposes the shared random stream to custom strategies.
func (rs *RootSystem) Stream() *RandomStream { return rs.rng }

// SetTropism replaces the tropism of the given types (all types when none
// are named), overriding what the factory built at Initialize.
func (rs *RootSystem) SetTropism(tf Tropism, types ...int) {
	if len(types) == 0 {
		for t := range rs.params {
			rs.overrideTrops[t] = tf
			if rs.tropisms != nil {
				rs.tropisms[t] = tf
			}
		}
		return
	}
	for _, t := range types {
		rs.overrideTrops[t] = tf
		if rs.tropisms != nil {
			rs.tropisms[t] = tf
		}
	}
}

func (rs *RootSystem) SetRootFactory(f RootFactory)                     { rs.rootFactory = f }
func (rs *RootSystem) SetTropismFactory(f TropismFactory)               { rs.tropismFact = f }
func (rs *RootSystem) SetGrowthFunctionFactory(f GrowthFunctionFactory) { rs.growthFact = f }

// Initialize builds the base axes: one tap root, basal roots emerging from
// the seed, and shoot-borne roots organized in crowns along the stem. It
// discards prior axes and resets counters and time but keeps the parameter
// tables. Must be called after the parameters are set and before Simulate.
func (rs *RootSystem) Initialize(basal, shootborne int) error {
	if _, ok := rs.params[1]; !ok {
		return fmt.Errorf("initialize: tap root type 1 not found")
	}
	if basal > 0 {
		if _, ok := rs.params[rs.plant.BasalType]; !ok {
			return fmt.Errorf("initialize: basal root type %d not found", rs.plant.BasalType)
		}
	}
	if shootborne > 0 {
		if _, ok := rs.params[rs.plant.ShootborneType]; !ok {
			return fmt.Errorf("initialize: shoot-borne root type %d not found", rs.plant.ShootborneType)
		}
	}
	types := make([]int, 0, len(rs.params))
	for t := range rs.params {
		types = append(types, t)
	}
	sort.Ints(types)
	for _, t := range types {
		for _, s := range rs.params[t].Successors {
			if _, ok := rs.params[s]; !ok {
				return fmt.Errorf("initialize: root type %d: successor type %d not found", t, s)
			}
		}
	}

	rs.arena = rs.arena[:0]
	rs.baseRoots = rs.baseRoots[:0]
	rs.rootsCache = nil
	rs.snapshots = nil
	rs.crownNodes = nil
	rs.numberOfCrowns = 0
	rs.simtime = 0
	rs.rid, rs.nid = -1, -1
	rs.oldNON, rs.oldNOR = 0, 0

	// fresh strategy instances per type, in stable type order
	rs.tropisms = make(map[int]Tropism)
	rs.growths = make(map[int]GrowthFunction)
	for _, t := range types {
		tp := rs.params[t]
		gf, err := rs.growthFact.Create(tp.GrowthKind)
		if err != nil {
			return fmt.Errorf("initialize: root type %d: %w", t, err)
		}
		rs.growths[t] = gf
		if tf, ok := rs.overrideTrops[t]; ok {
			rs.tropisms[t] = tf
			continue
		}
		tf, err := rs.tropismFact.Create(tp.TropismKind, tp.TropismN, tp.TropismSigma, rs)
		if err != nil {
			return fmt.Errorf("initialize: root type %d: %w", t, err)
		}
		rs.tropisms[t] = tf
	}

	down := Vector3{0, 0, -1}
	seed := rs.plant.SeedPos

	tap, err := rs.createRoot(1, down, 0, nil, 0, 0)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	tap.addNode(seed, 0)
	rs.baseRoots = append(rs.baseRoots, tap.ID)
	seedNode := tap.Nodes[0]

	for i := 0; i < basal; i++ {
		delay := rs.plant.FirstB + float64(i)*rs.plant.DelayB
		b, err := rs.createRoot(rs.plant.BasalType, down, delay, nil, 0, 0)
		if err != nil {
			return fmt.Errorf("initialize: %w", err)
		}
		b.Nodes = append(b.Nodes, seedNode) // basal roots share the seed node
		b.Etime = delay
		rs.baseRoots = append(rs.baseRoots, b.ID)
	}

	if shootborne > 0 {
		nc := rs.plant.NC
		if nc < 1 {
			nc = 1
		}
		rs.numberOfCrowns = (shootborne + nc - 1) / nc
		made := 0
		for c := 0; c < rs.numberOfCrowns; c++ {
			crownDelay := rs.plant.FirstSB + float64(c)*rs.plant.DelayRC
			crownPos := seed.Add(Vector3{0, 0, float64(c) * rs.plant.NZ})
			var crownNode Node
			for j := 0; j < nc && made < shootborne; j++ {
				delay := crownDelay + float64(j)*rs.plant.DelaySB
				// spread crown roots around the stem
				h := RotateHeading(down, 2*math.Pi*float64(j)/float64(nc), rs.params[rs.plant.ShootborneType].Theta)
				sb, err := rs.createRoot(rs.plant.ShootborneType, h, delay, nil, 0, 0)
				if err != nil {
					return fmt.Errorf("initialize: %w", err)
				}
				if j == 0 {
					sb.addNode(crownPos, crownDelay)
					crownNode = sb.Nodes[0]
					rs.crownNodes = append(rs.crownNodes, crownNode.ID)
				} else {
					sb.Nodes = append(sb.Nodes, crownNode)
				}
				sb.Etime = delay
				rs.baseRoots = append(rs.baseRoots, sb.ID)
				made++
			}
		}
	}

	rs.initialized = true
	return nil
}

// Simulate advances the whole axis tree by dt. It is the single mutating
// entry point for growth; there is no rollback (use Push/Pop for that).
// Non-positive dt is a no-op.
func (rs *RootSystem) Simulate(dt float64) error {
	if !rs.initialized {
		return fmt.Errorf("simulate: initialize must be called first")
	}
	if dt <= 0 {
		return nil
	}
	rs.oldNON = rs.NumberOfNodes()
	rs.oldNOR = len(rs.Roots())
	rs.simtime += dt
	for _, id := range rs.baseRoots {
		rs.arena[id].simulate(dt)
	}
	rs.rootsCache = nil
	return nil
}

// Run simulates the configured total duration in steps of the configured
// default step size.
func (rs *RootSystem) Run() error {
	dt := rs.plant.Dt
	if dt <= 0 {
		dt = 1
	}
	for rs.simtime < rs.plant.SimTime-1e-9 {
		step := math.Min(dt, rs.plant.SimTime-rs.simtime)
		if err := rs.Simulate(step); err != nil {
			return err
		}
	}
	return nil
}

// SimulateScaled advances by dt while capping the total length increment
// at maxinc*dt: it trial-runs the step on a snapshot, measures the
// unimpeded increment, rolls back, adjusts the proportional elongation
// scale and runs the step for real. The root types to throttle must carry
// se as their ScaleElongation.
func (rs *RootSystem) SimulateScaled(dt, maxinc float64, se *ProportionalElongation) error {
	if se == nil {
		return rs.Simulate(dt)
	}
	se.SetScale(1)
	before := rs.totalLength()
	rs.Push()
	if err := rs.Simulate(dt); err != nil {
		_ = rs.Pop()
		return err
	}
	inc := rs.totalLength() - before
	if err := rs.Pop(); err != nil {
		return err
	}
	if inc > maxinc*dt && inc > 0 {
		se.SetScale(maxinc * dt / inc)
	}
	return rs.Simulate(dt)
}

func (rs *RootSystem) totalLength() float64 {
	sum := 0.0
	for _, r := range rs.Roots() {
		sum += r.Length
	}
	return sum
}

// SimTime is the cumulative simulated time.
func (rs *RootSystem) SimTime() float64 { return rs.simtime }

// createRoot runs the root factory and registers the result in the arena
// under a freshly allocated id.
func (rs *RootSystem) createRoot(t int, heading Vector3, delay float64, parent *Root, pbl float64, pni int) (*Root, error) {
	r, err := rs.rootFactory.Create(rs, t, heading, delay, parent, pbl, pni)
	if err != nil {
		return nil, err
	}
	r.ID = rs.nextRootID()
	r.sys = rs
	rs.arena = append(rs.arena, r)
	return r, nil
}

func (rs *RootSystem) nextRootID() int { rs.rid++; return rs.rid }
func (rs *RootSystem) nextNodeID() int { rs.nid++; return rs.nid }

func (rs *RootSystem) tropismFor(t int) Tropism       { return rs.tropisms[t] }
func (rs *RootSystem) growthFor(t int) GrowthFunction { return rs.growths[t] }

// Roots flattens the axis tree into creation order: base roots as added at
// Initialize, laterals in spawn order, depth first. Only axes with at
// least one segment are enumerated. The result is cached until the next
// mutation.
func (rs *RootSystem) Roots() []*Root {
	if rs.rootsCache == nil {
		roots := make([]*Root, 0, len(rs.arena))
		var walk func(id int)
		walk = func(id int) {
			r := rs.arena[id]
			if r.HasSegments() {
				roots = append(roots, r)
			}
			for _, c := range r.Children {
				walk(c)
			}
		}
		for _, id := range rs.baseRoots {
			walk(id)
		}
		rs.rootsCache = roots
	}
	return rs.rootsCache
}

// BaseRoots returns the tap, basal and shoot-borne roots.
func (rs *RootSystem) BaseRoots() []*Root {
	out := make([]*Root, len(rs.baseRoots))
	for i, id := range rs.baseRoots {
		out[i] = rs.arena[id]
	}
	return out
}

// RootByID looks up any allocated root, enumerable or not.
func (rs *RootSystem) RootByID(id int) (*Root, bool) {
	if id < 0 || id >= len(rs.arena) {
		return nil, false
	}
	return rs.arena[id], true
}

// NumberOfNodes counts the unique nodes, including the seed and crown nodes.
func (rs *RootSystem) NumberOfNodes() int { return rs.nid + 1 }

// NumberOfSegments counts the polyline segments of all enumerable roots,
// excluding the artificial shoot segments.
func (rs *RootSystem) NumberOfSegments() int {
	n := 0
	for _, r := range rs.Roots() {
		n += len(r.Nodes) - 1
	}
	return n
}

// NumberOfRoots counts the enumerable roots, or every allocated root id
// when all is true (unemerged laterals included).
func (rs *RootSystem) NumberOfRoots(all bool) int {
	if all {
		return rs.rid + 1
	}
	return len(rs.Roots())
}

// Nodes copies all node positions, indexed by node id.
func (rs *RootSystem) Nodes() []Vector3 {
	nodes := make([]Vector3, rs.NumberOfNodes())
	for _, r := range rs.arena {
		for _, n := range r.Nodes {
			nodes[n.ID] = n.Pos
		}
	}
	return nodes
}

// NETimes copies all node emergence times, indexed by node id.
func (rs *RootSystem) NETimes() []float64 {
	times := make([]float64, rs.NumberOfNodes())
	for _, r := range rs.arena {
		for _, n := range r.Nodes {
			times[n.ID] = n.Time
		}
	}
	return times
}

// Polylines copies the node positions of each enumerable root.
func (rs *RootSystem) Polylines() [][]Vector3 {
	out := make([][]Vector3, 0, len(rs.Roots()))
	for _, r := range rs.Roots() {
		line := make([]Vector3, len(r.Nodes))
		for i, n := range r.Nodes {
			line[i] = n.Pos
		}
		out = append(out, line)
	}
	return out
}

// PolylinesNET copies the node emergence times of each enumerable root.
func (rs *RootSystem) PolylinesNET() [][]float64 {
	out := make([][]float64, 0, len(rs.Roots()))
	for _, r := range rs.Roots() {
		line := make([]float64, len(r.Nodes))
		for i, n := range r.Nodes {
			line[i] = n.Time
		}
		out = append(out, line)
	}
	return out
}

// Segments copies all segment node-id pairs, root by root.
func (rs *RootSystem) Segments() []Segment {
	segs := make([]Segment, 0, rs.NumberOfSegments())
	for _, r := range rs.Roots() {
		for i := 1; i < len(r.Nodes); i++ {
			segs = append(segs, Segment{From: r.Nodes[i-1].ID, To: r.Nodes[i].ID})
		}
	}
	return segs
}

// SegmentOrigins returns, parallel to Segments, the root each segment
// belongs to.
func (rs *RootSystem) SegmentOrigins() []*Root {
	out := make([]*Root, 0, rs.NumberOfSegments())
	for _, r := range rs.Roots() {
		for i := 1; i < len(r.Nodes); i++ {
			out = append(out, r)
		}
	}
	return out
}

// ShootSegments returns the artificial segments connecting the seed to the
// root crowns along the stem.
func (rs *RootSystem) ShootSegments() []Segment {
	if len(rs.crownNodes) == 0 {
		return nil
	}
	segs := make([]Segment, 0, len(rs.crownNodes))
	prev := 0 // seed node
	for _, id := range rs.crownNodes {
		segs = append(segs, Segment{From: prev, To: id})
		prev = id
	}
	return segs
}

// RootTips returns the node ids of all root tips.
func (rs *RootSystem) RootTips() []int {
	out := make([]int, 0, len(rs.Roots()))
	for _, r := range rs.Roots() {
		out = append(out, r.tip().ID)
	}
	return out
}

// RootBases returns the node ids of all root bases.
func (rs *RootSystem) RootBases() []int {
	out := make([]int, 0, len(rs.Roots()))
	for _, r := range rs.Roots() {
		out = append(out, r.Nodes[0].ID)
	}
	return out
}

// NumberOfNewNodes counts nodes created by the last Simulate call.
func (rs *RootSystem) NumberOfNewNodes() int { return rs.NumberOfNodes() - rs.oldNON }

// NumberOfNewRoots counts roots that became enumerable during the last
// Simulate call.
func (rs *RootSystem) NumberOfNewRoots() int { return len(rs.Roots()) - rs.oldNOR }

// NewNodeIndices returns the ids of nodes created by the last Simulate call.
func (rs *RootSystem) NewNodeIndices() []int {
	out := make([]int, 0, rs.NumberOfNewNodes())
	for id := rs.oldNON; id <= rs.nid; id++ {
		out = append(out, id)
	}
	return out
}

// NewNodes returns the positions of nodes created by the last Simulate call.
func (rs *RootSystem) NewNodes() []Vector3 {
	nodes := rs.Nodes()
	out := make([]Vector3, 0, rs.NumberOfNewNodes())
	for id := rs.oldNON; id <= rs.nid; id++ {
		out = append(out, nodes[id])
	}
	return out
}

// NewSegments returns the segments created by the last Simulate call.
func (rs *RootSystem) NewSegments() []Segment {
	var out []Segment
	for _, r := range rs.Roots() {
		for i := 1; i < len(r.Nodes); i++ {
			if r.Nodes[i].ID >= rs.oldNON {
				out = append(out, Segment{From: r.Nodes[i-1].ID, To: r.Nodes[i].ID})
			}
		}
	}
	return out
}

// NewSegmentOrigins returns, parallel to NewSegments, the root of each new
// segment.
func (rs *RootSystem) NewSegmentOrigins() []*Root {
	var out []*Root
	for _, r := range rs.Roots() {
		for i := 1; i < len(r.Nodes); i++ {
			if r.Nodes[i].ID >= rs.oldNON {
				out = append(out, r)
			}
		}
	}
	return out
}

// UpdatedNodeIndices returns the ids of pre-existing tip nodes that were
// moved in place during the last Simulate call.
func (rs *RootSystem) UpdatedNodeIndices() []int {
	var out []int
	for _, r := range rs.Roots() {
		if r.tipMoved && r.oldNN > 0 {
			out = append(out, r.Nodes[r.oldNN-1].ID)
		}
	}
	return out
}

// UpdatedNodes returns the new positions of the moved tip nodes, parallel
// to UpdatedNodeIndices.
func (rs *RootSystem) UpdatedNodes() []Vector3 {
	var out []Vector3
	for _, r := range rs.Roots() {
		if r.tipMoved && r.oldNN > 0 {
			out = append(out, r.Nodes[r.oldNN-1].Pos)
		}
	}
	return out
}

func (rs *RootSystem) String() string {
	return fmt.Sprintf("root system: %d roots, %d nodes, %d base roots, simulated %g days",
		rs.NumberOfRoots(false), rs.NumberOfNodes(), len(rs.baseRoots), rs.simtime)
}

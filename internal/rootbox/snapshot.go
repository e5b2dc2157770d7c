package rootbox

import "fmt"

// systemState is a deep, independent copy of everything a RootSystem
// mutates over time: the axis arena, the parameter tables, the strategy
// instances (they may carry per-instance adjustable parameters), the id
// counters and the full random generator state. Parameter entries,
// geometry and soil are shared by reference; they are configuration, not
// simulation state, but the table itself is copied so entries added after
// a push do not leak into the snapshot.
type systemState struct {
	arena     []*Root
	baseRoots []int

	params map[int]*TypeParameter
	plant  PlantParameter

	tropisms map[int]Tropism
	growths  map[int]GrowthFunction

	simtime        float64
	rid, nid       int
	oldNON, oldNOR int
	crownNodes     []int
	numberOfCrowns int
	initialized    bool
	manualSeed     bool

	rngState []byte
}

func (rs *RootSystem) capture() *systemState {
	st := &systemState{
		baseRoots:      append([]int(nil), rs.baseRoots...),
		plant:          rs.plant,
		simtime:        rs.simtime,
		rid:            rs.rid,
		nid:            rs.nid,
		oldNON:         rs.oldNON,
		oldNOR:         rs.oldNOR,
		crownNodes:     append([]int(nil), rs.crownNodes...),
		numberOfCrowns: rs.numberOfCrowns,
		initialized:    rs.initialized,
		manualSeed:     rs.manualSeed,
		rngState:       rs.rng.State(),
	}
	st.arena = make([]*Root, len(rs.arena))
	for i, r := range rs.arena {
		st.arena[i] = r.copyState()
	}
	st.params = make(map[int]*TypeParameter, len(rs.params))
	for t, p := range rs.params {
		st.params[t] = p
	}
	st.tropisms = make(map[int]Tropism, len(rs.tropisms))
	for t, tf := range rs.tropisms {
		st.tropisms[t] = tf.Clone()
	}
	st.growths = make(map[int]GrowthFunction, len(rs.growths))
	for t, gf := range rs.growths {
		st.growths[t] = gf.Clone()
	}
	return st
}

func (rs *RootSystem) restore(st *systemState) {
	rs.arena = make([]*Root, len(st.arena))
	for i, r := range st.arena {
		c := r.copyState()
		c.sys = rs
		rs.arena[i] = c
	}
	rs.baseRoots = append([]int(nil), st.baseRoots...)
	rs.params = make(map[int]*TypeParameter, len(st.params))
	for t, p := range st.params {
		rs.params[t] = p
	}
	rs.tropisms = make(map[int]Tropism, len(st.tropisms))
	for t, tf := range st.tropisms {
		rs.tropisms[t] = tf.Clone()
	}
	rs.growths = make(map[int]GrowthFunction, len(st.growths))
	for t, gf := range st.growths {
		rs.growths[t] = gf.Clone()
	}
	rs.plant = st.plant
	rs.simtime = st.simtime
	rs.rid, rs.nid = st.rid, st.nid
	rs.oldNON, rs.oldNOR = st.oldNON, st.oldNOR
	rs.crownNodes = append([]int(nil), st.crownNodes...)
	rs.numberOfCrowns = st.numberOfCrowns
	rs.initialized = st.initialized
	rs.manualSeed = st.manualSeed
	rs.rootsCache = nil
	if err := rs.rng.RestoreState(st.rngState); err != nil {
		// the bytes came from the very generator they go back into
		panic(fmt.Sprintf("rootbox: restore snapshot: %v", err))
	}
}

// Push captures the current simulation state on the snapshot stack.
// Snapshots nest: push, push, pop, pop.
func (rs *RootSystem) Push() {
	rs.snapshots = append(rs.snapshots, rs.capture())
}

// Pop removes the top snapshot and atomically replaces the engine's entire
// mutable state with it, including the random generator state, so
// subsequent draws are bit-identical to draws right after the Push.
func (rs *RootSystem) Pop() error {
	if len(rs.snapshots) == 0 {
		return fmt.Errorf("pop: snapshot stack is empty")
	}
	top := rs.snapshots[len(rs.snapshots)-1]
	rs.snapshots = rs.snapshots[:len(rs.snapshots)-1]
	rs.restore(top)
	return nil
}

// SnapshotDepth reports how many snapshots are stacked.
func (rs *RootSystem) SnapshotDepth() int { return len(rs.snapshots) }

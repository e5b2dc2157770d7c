package rootbox

import "math"

// Node is one vertex of a root polyline.
type Node struct {
	ID   int
	Pos  Vector3
	Time float64 // emergence time
}

// LifeState is the lifecycle of an axis.
type LifeState int

const (
	LifeUnemerged LifeState = iota
	LifeGrowing
	LifeFinished
	LifeDead
)

func (s LifeState) String() string {
	switch s {
	case LifeUnemerged:
		return "unemerged"
	case LifeGrowing:
		return "growing"
	case LifeFinished:
		return "finished"
	case LifeDead:
		return "dead"
	}
	return "unknown"
}

// Root is one axis of the root system. Roots live in the engine's arena
// keyed by id; parent-to-children edges are id lists, so deep copies for
// snapshots never chase pointers.
//
// The node sequence is append-only while growing; only the most recent tip
// node may still be moved while the current step is resolved against
// tropism and geometry.
type Root struct {
	ID     int
	Parent int // root id, -1 for base roots

	Children []int

	Param RootParameter

	Nodes  []Node
	Age    float64 // negative while the emergence delay runs down
	Length float64
	Alive  bool
	Etime  float64 // absolute emergence time

	InitialHeading Vector3
	PBL            float64 // length along the parent at insertion
	PNI            int     // parent node index at insertion

	lateralsMade    int
	lastLateralNode int // node index carrying the latest lateral base, -1 if none
	oldNN           int // node count at the start of the current step
	tipMoved        bool
	stepEnd         float64 // age at the end of the step being resolved

	sys *RootSystem
}

// State derives the lifecycle state from the growth counters.
func (r *Root) State() LifeState {
	switch {
	case r.Age < 0:
		return LifeUnemerged
	case !r.Alive:
		return LifeDead
	case r.Length >= r.Param.MaxLength()-1e-9:
		return LifeFinished
	}
	return LifeGrowing
}

// Order is the topological order: 0 for base roots, parent order+1 below.
func (r *Root) Order() int {
	o := 0
	for p := r.Parent; p >= 0; {
		o++
		p = r.sys.arena[p].Parent
	}
	return o
}

// simulate advances this axis by dt and recurses into every child.
// Laterals spawned during this very step are advanced by their overshoot
// past the branch point in createLateral and skipped here.
func (r *Root) simulate(dt float64) {
	r.oldNN = len(r.Nodes)
	r.tipMoved = false
	preexisting := len(r.Children)

	if r.Alive {
		step := dt
		if r.Age+dt < 0 {
			// still waiting to emerge
			r.Age += dt
		} else {
			if r.Age < 0 {
				// emerges mid-step: only the remainder counts as growth
				step = r.Age + dt
				r.Age = 0
			}
			if r.Param.RLT > 0 && r.Age+step > r.Param.RLT {
				step = math.Max(r.Param.RLT-r.Age, 0)
			}
			r.stepEnd = r.Age + step
			if step > 0 && r.Length < r.Param.MaxLength()-1e-9 {
				gf := r.sys.growthFor(r.Param.Type)
				target := gf.Length(r.Age+step, &r.Param)
				dl := target - r.Length
				if se := r.scaleElongation(); se != 1 {
					dl *= se
				}
				dl = math.Min(dl, r.Param.MaxLength()-r.Length)
				if dl > 0 {
					r.grow(dl)
				}
			}
			r.Age += step
			if r.Param.RLT > 0 && r.Age >= r.Param.RLT-1e-12 {
				r.Alive = false
			}
		}
	}

	// children that existed before this step, in creation order
	for i := 0; i < preexisting; i++ {
		r.sys.arena[r.Children[i]].simulate(dt)
	}
}

func (r *Root) scaleElongation() float64 {
	tp := r.sys.params[r.Param.Type]
	if tp == nil || tp.ScaleElongation == nil {
		return 1
	}
	s := tp.ScaleElongation.Value(r.tip().Pos)
	if s < 0 {
		return 0
	}
	return s
}

// grow consumes the incremental length dl, spawning a lateral whenever the
// accumulated length crosses the next scheduled branch distance.
func (r *Root) grow(dl float64) {
	tp := r.sys.params[r.Param.Type]
	for dl > 1e-10 {
		if tp != nil && len(tp.Successors) > 0 && r.lateralsMade < r.Param.Nob {
			next := r.nextBranchDistance()
			if r.Length+dl >= next-1e-10 {
				seg := next - r.Length
				if seg > 0 {
					grown := r.elongate(seg)
					dl -= grown
					if grown < seg-1e-10 {
						return // stuck at the boundary
					}
				}
				r.createLateral()
				continue
			}
		}
		r.elongate(dl)
		return
	}
}

// nextBranchDistance is the basal zone plus the spacings already consumed.
func (r *Root) nextBranchDistance() float64 {
	d := r.Param.LB
	for i := 0; i < r.lateralsMade && i < len(r.Param.LN); i++ {
		d += r.Param.LN[i]
	}
	return d
}

// elongate adds dl to the polyline in segments of the axial resolution dx.
// A short tip segment left by a previous step is extended in place before
// any new node is appended. Returns the length actually grown, which falls
// short of dl only when the confining geometry truncates the step.
func (r *Root) elongate(dl float64) float64 {
	tp := r.sys.params[r.Param.Type]
	dx := 0.25
	if tp != nil && tp.Dx > 0 {
		dx = tp.Dx
	}
	grown := 0.0

	// extend the unfinished tip segment first
	if n := len(r.Nodes); n > 1 && r.lastLateralNode != n-1 {
		prev := r.Nodes[n-2]
		sdx := r.Nodes[n-1].Pos.Sub(prev.Pos).Length()
		if sdx < dx-1e-9 {
			take := math.Min(dl, dx-sdx)
			h := r.sys.tropismFor(r.Param.Type).NextHeading(prev.Pos, r.headingAt(n-2), sdx+take, r)
			pos, ok := r.confine(prev.Pos, prev.Pos.Add(h.Scale(sdx+take)))
			moved := pos.Sub(prev.Pos).Length() - sdx
			if moved > 0 {
				r.Nodes[n-1].Pos = pos
				r.Length += moved
				r.Nodes[n-1].Time = r.nodeTime()
				r.tipMoved = true
				grown += moved
				dl -= moved
			}
			if !ok {
				return grown
			}
		}
	}

	for dl > 1e-10 {
		step := math.Min(dx, dl)
		tip := r.tip()
		h := r.sys.tropismFor(r.Param.Type).NextHeading(tip.Pos, r.heading(), step, r)
		pos, ok := r.confine(tip.Pos, tip.Pos.Add(h.Scale(step)))
		seg := pos.Sub(tip.Pos).Length()
		if seg < 1e-10 {
			return grown
		}
		r.Length += seg
		r.addNode(pos, r.nodeTime())
		grown += seg
		dl -= seg
		if !ok {
			return grown
		}
	}
	return grown
}

// confine clamps a proposed tip position to the confining geometry by
// bisecting the chord from the last inside point. The boolean is false
// when growth was truncated.
func (r *Root) confine(from, to Vector3) (Vector3, bool) {
	g := r.sys.geometry
	if inside(g, to) {
		return to, true
	}
	lo, hi := 0.0, 1.0
	d := to.Sub(from)
	for i := 0; i < 24; i++ {
		mid := (lo + hi) / 2
		if inside(g, from.Add(d.Scale(mid))) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return from.Add(d.Scale(lo)), false
}

// createLateral spawns a child axis at the current tip. The child starts
// with the shared tip node and a delay so it emerges only once the apical
// zone has moved past the branch point.
func (r *Root) createLateral() {
	r.lateralsMade++
	tp := r.sys.params[r.Param.Type]
	lt, ok := tp.SuccessorType(r.sys.rng)
	if !ok {
		return
	}
	gf := r.sys.growthFor(r.Param.Type)
	ageLN := gf.Age(r.Length, &r.Param)
	ageLG := gf.Age(math.Min(r.Length+r.Param.LA, r.Param.MaxLength()), &r.Param)
	delay := 0.0
	if !math.IsInf(ageLG, 1) {
		delay = math.Max(ageLG-ageLN, 0)
	}
	pni := len(r.Nodes) - 1
	child, err := r.sys.createRoot(lt, r.heading(), delay, r, r.Length, pni)
	if err != nil {
		// successor tables are validated at Initialize; a failure here
		// means a custom factory declined the root
		return
	}
	// laterals leave the parent at their realized insertion angle, at a
	// uniformly drawn azimuth
	child.InitialHeading = RotateHeading(r.heading(), 2*math.Pi*r.sys.rng.Uniform01(), child.Param.Theta)
	if !math.IsInf(ageLN, 1) {
		child.Etime = r.Etime + ageLN + delay
	} else {
		child.Etime = r.sys.simtime + delay
	}
	r.lastLateralNode = pni
	r.Children = append(r.Children, child.ID)
	// the part of the step past the branch point already belongs to the
	// lateral's clock
	if !math.IsInf(ageLN, 1) {
		if over := r.stepEnd - ageLN; over > 0 {
			child.simulate(over)
		}
	}
}

func (r *Root) addNode(pos Vector3, t float64) {
	r.Nodes = append(r.Nodes, Node{ID: r.sys.nextNodeID(), Pos: pos, Time: t})
}

// nodeTime estimates when the tip reached the current length.
func (r *Root) nodeTime() float64 {
	gf := r.sys.growthFor(r.Param.Type)
	age := gf.Age(r.Length, &r.Param)
	if math.IsInf(age, 1) {
		return r.sys.simtime
	}
	return r.Etime + age
}

func (r *Root) tip() Node {
	return r.Nodes[len(r.Nodes)-1]
}

// heading is the direction of the last segment, or the initial heading
// while the axis has a single node.
func (r *Root) heading() Vector3 {
	return r.headingAt(len(r.Nodes) - 1)
}

// headingAt is the direction of the segment ending in node i.
func (r *Root) headingAt(i int) Vector3 {
	if i <= 0 {
		return r.InitialHeading
	}
	h := r.Nodes[i].Pos.Sub(r.Nodes[i-1].Pos)
	if h.Length() == 0 {
		return r.InitialHeading
	}
	return h.Normalized()
}

// HasSegments reports whether the axis contributes at least one segment;
// only such roots are enumerated by RootSystem.Roots.
func (r *Root) HasSegments() bool {
	return len(r.Nodes) > 1
}

// copyState deep-copies everything that changes over time.
func (r *Root) copyState() *Root {
	c := *r
	c.Nodes = append([]Node(nil), r.Nodes...)
	c.Children = append([]int(nil), r.Children...)
	c.Param = r.Param.clone()
	c.sys = nil
	return &c
}

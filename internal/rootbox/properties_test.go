package rootbox_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/timokoch/CRootBox/internal/rootbox"
	"github.com/timokoch/CRootBox/internal/sdf"
)

// branchingSystem builds a two-type plant with basal roots, exercising
// parameter realization, lateral spawning and staggered emergence.
func branchingSystem(seed uint64) *rootbox.RootSystem {
	rs := rootbox.New()

	tap := rootbox.DefaultTypeParameter(1)
	tap.LB, tap.LBs = 1.5, 0.3
	tap.LN, tap.LNs = 0.8, 0.2
	tap.Nob, tap.Nobs = 8, 2
	tap.LA, tap.LAs = 6, 1
	tap.Rs = 0.2
	tap.Successors = []int{2}
	tap.SuccessorP = []float64{1}
	ExpectWithOffset(1, rs.SetTypeParameter(tap)).To(Succeed())

	lat := rootbox.DefaultTypeParameter(2)
	lat.LA, lat.LAs = 2.5, 0.5
	lat.TropismSigma = 0.4
	ExpectWithOffset(1, rs.SetTypeParameter(lat)).To(Succeed())

	basal := rootbox.DefaultTypeParameter(4)
	basal.LA = 5
	basal.Thetas = 0.1
	ExpectWithOffset(1, rs.SetTypeParameter(basal)).To(Succeed())

	rs.SetSeed(seed)
	ExpectWithOffset(1, rs.Initialize(3, 0)).To(Succeed())
	return rs
}

func allNodes(rs *rootbox.RootSystem) []rootbox.Vector3 { return rs.Nodes() }

var _ = Describe("determinism", func() {
	It("reproduces a run bit for bit from the same seed", func() {
		a := branchingSystem(42)
		b := branchingSystem(42)
		for i := 0; i < 15; i++ {
			Expect(a.Simulate(1)).To(Succeed())
			Expect(b.Simulate(1)).To(Succeed())
		}
		Expect(allNodes(a)).To(Equal(allNodes(b)))
		Expect(a.NumberOfRoots(true)).To(Equal(b.NumberOfRoots(true)))
	})

	It("is independent of step partitioning only in time, not in draws", func() {
		// one big step and many small steps are different discretizations;
		// they must both be valid but are not required to agree
		a := branchingSystem(42)
		Expect(a.Simulate(15)).To(Succeed())
		Expect(a.SimTime()).To(Equal(15.0))
	})

	It("diverges for different seeds", func() {
		a := branchingSystem(1)
		b := branchingSystem(2)
		Expect(a.Simulate(15)).To(Succeed())
		Expect(b.Simulate(15)).To(Succeed())
		Expect(allNodes(a)).NotTo(Equal(allNodes(b)))
	})
})

var _ = Describe("snapshots", func() {
	It("rolls back to the exact pushed state, generator included", func() {
		a := branchingSystem(7)
		b := branchingSystem(7)

		Expect(a.Simulate(10)).To(Succeed())
		Expect(b.Simulate(10)).To(Succeed())

		// b takes a trial excursion and rolls it back
		b.Push()
		Expect(b.Simulate(20)).To(Succeed())
		Expect(b.Pop()).To(Succeed())

		Expect(b.SimTime()).To(Equal(10.0))
		Expect(allNodes(b)).To(Equal(allNodes(a)))

		// after the rollback both evolve identically
		Expect(a.Simulate(20)).To(Succeed())
		Expect(b.Simulate(20)).To(Succeed())
		Expect(allNodes(b)).To(Equal(allNodes(a)))
	})

	It("restores the generator across an explicit reseed", func() {
		rs := branchingSystem(7)
		rs.Rand()
		rs.Push()
		want := rs.Rand()
		rs.SetSeed(2)
		Expect(rs.Pop()).To(Succeed())
		Expect(rs.Rand()).To(Equal(want))
	})

	It("nests", func() {
		rs := branchingSystem(7)
		Expect(rs.Simulate(5)).To(Succeed())
		after5 := allNodes(rs)

		rs.Push()
		Expect(rs.Simulate(5)).To(Succeed())
		after10 := allNodes(rs)

		rs.Push()
		Expect(rs.Simulate(5)).To(Succeed())
		Expect(rs.SnapshotDepth()).To(Equal(2))

		Expect(rs.Pop()).To(Succeed())
		Expect(allNodes(rs)).To(Equal(after10))
		Expect(rs.Pop()).To(Succeed())
		Expect(allNodes(rs)).To(Equal(after5))
	})

	It("fails to pop an empty stack", func() {
		rs := branchingSystem(7)
		Expect(rs.Pop()).NotTo(Succeed())
	})
})

var _ = Describe("growth invariants", func() {
	It("never exceeds the realized maximal length", func() {
		rs := branchingSystem(11)
		Expect(rs.Simulate(120)).To(Succeed())
		for _, r := range rs.Roots() {
			Expect(r.Length).To(BeNumerically("<=", r.Param.MaxLength()+1e-9),
				"root %d", r.ID)
		}
	})

	It("keeps node ids unique and consecutive", func() {
		rs := branchingSystem(11)
		Expect(rs.Simulate(30)).To(Succeed())

		seen := make(map[int]int)
		for _, r := range rs.BaseRoots() {
			collectNodeIDs(rs, r, seen)
		}
		Expect(len(seen)).To(Equal(rs.NumberOfNodes()))
		for id := 0; id < rs.NumberOfNodes(); id++ {
			Expect(seen).To(HaveKey(id))
		}
	})

	It("assigns root ids in creation order without gaps", func() {
		rs := branchingSystem(11)
		Expect(rs.Simulate(30)).To(Succeed())
		for id := 0; id < rs.NumberOfRoots(true); id++ {
			r, ok := rs.RootByID(id)
			Expect(ok).To(BeTrue())
			Expect(r.ID).To(Equal(id))
		}
	})

	It("grows monotonically in time and length", func() {
		rs := branchingSystem(3)
		prevLen := 0.0
		for i := 0; i < 20; i++ {
			Expect(rs.Simulate(1)).To(Succeed())
			total := 0.0
			for _, l := range rs.Scalar(rootbox.ScalarLength) {
				total += l
			}
			Expect(total).To(BeNumerically(">=", prevLen))
			prevLen = total
		}
	})
})

var _ = Describe("confinement", func() {
	It("keeps every node inside the container", func() {
		pot := sdf.Container{Radius: 3, Depth: 12}
		rs := branchingSystem(13)
		rs.SetGeometry(pot)
		Expect(rs.Initialize(3, 0)).To(Succeed())
		Expect(rs.Simulate(60)).To(Succeed())

		for _, p := range rs.Nodes() {
			Expect(pot.Distance(p)).To(BeNumerically("<=", 1e-6),
				"node at %v left the pot", p)
		}
	})

	It("truncates growth at a shallow floor", func() {
		floor := sdf.Box{
			Min: rootbox.Vector3{X: -50, Y: -50, Z: -5},
			Max: rootbox.Vector3{X: 50, Y: 50, Z: 0},
		}
		rs := rootbox.New()
		tp := rootbox.DefaultTypeParameter(1)
		tp.GrowthKind = rootbox.GrowthLinear
		tp.TropismSigma = 0
		Expect(rs.SetTypeParameter(tp)).To(Succeed())
		rs.SetGeometry(floor)
		Expect(rs.Initialize(0, 0)).To(Succeed())
		Expect(rs.Simulate(10)).To(Succeed())

		deepest := 0.0
		for _, p := range rs.Nodes() {
			deepest = math.Min(deepest, p.Z)
		}
		Expect(deepest).To(BeNumerically(">=", -5-1e-6))
	})
})

func collectNodeIDs(rs *rootbox.RootSystem, r *rootbox.Root, seen map[int]int) {
	for _, n := range r.Nodes {
		seen[n.ID]++
	}
	for _, id := range r.Children {
		child, ok := rs.RootByID(id)
		if ok {
			collectNodeIDs(rs, child, seen)
		}
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/timokoch/CRootBox/internal/config"
	"github.com/timokoch/CRootBox/internal/ensemble"
	"github.com/timokoch/CRootBox/internal/export"
	"github.com/timokoch/CRootBox/internal/rootbox"
	"github.com/timokoch/CRootBox/internal/sdf"
	"github.com/timokoch/CRootBox/internal/storage"
	"github.com/timokoch/CRootBox/internal/tui"
)

var (
	dataDir    string
	configFile string
	seed       int64
	simTime    float64
	dt         float64
	basal      int
	shootborne int
	// container geometry; zero means unconfined
	potRadius float64
	potDepth  float64
	// export
	format  string
	outFile string
	// ensemble
	numRuns int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "crootbox",
		Short: "root system architecture simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".crootbox", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "grow a root system and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "plant parameter file (yaml)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	runCmd.Flags().Float64Var(&simTime, "time", 0, "simulation time in days")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep in days")
	runCmd.Flags().IntVar(&basal, "basal", -1, "number of basal roots")
	runCmd.Flags().IntVar(&shootborne, "shootborne", -1, "number of shoot-borne roots")
	runCmd.Flags().Float64Var(&potRadius, "pot-radius", 0, "confine to a cylindrical pot of this radius")
	runCmd.Flags().Float64Var(&potDepth, "pot-depth", 0, "pot depth, used with --pot-radius")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the root length depth profile of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run to vtp, rsml or svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "vtp", "output format: vtp, rsml, svg")
	exportCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in plant presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tROOT TYPES\tSIM TIME\tBASAL\tSHOOTBORNE")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%.0f days\t%d\t%d\n",
					name, len(cfg.RootTypes), cfg.Plant.SimTime,
					cfg.Plant.BasalRoots, cfg.Plant.ShootborneRoots)
			}
			return w.Flush()
		},
	}

	paramsCmd := &cobra.Command{
		Use:   "params [preset]",
		Short: "show the root type parameters of a preset or config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showParams,
	}
	paramsCmd.Flags().StringVar(&configFile, "config", "", "plant parameter file (yaml)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch a root system grow in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run()
		},
	}

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [preset]",
		Short: "grow many stochastic realizations and report statistics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnsemble,
	}
	ensembleCmd.Flags().StringVar(&configFile, "config", "", "plant parameter file (yaml)")
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 10, "number of realizations")
	ensembleCmd.Flags().Int64Var(&seed, "seed", 1, "seed of the first realization")
	ensembleCmd.Flags().Float64Var(&potRadius, "pot-radius", 0, "confine to a cylindrical pot of this radius")
	ensembleCmd.Flags().Float64Var(&potDepth, "pot-depth", 0, "pot depth, used with --pot-radius")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, presetsCmd, paramsCmd, liveCmd, ensembleCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadRunConfig resolves preset, config file and flag overrides, in that
// order. Flags win over the file, the file wins over the preset.
func loadRunConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("time") {
		cfg.Plant.SimTime = simTime
	}
	if cmd.Flags().Changed("dt") {
		cfg.Plant.Dt = dt
	}
	if cmd.Flags().Changed("basal") {
		cfg.Plant.BasalRoots = basal
	}
	if cmd.Flags().Changed("shootborne") {
		cfg.Plant.ShootborneRoots = shootborne
	}
	return cfg, nil
}

func buildSystem(cfg *config.Config) (*rootbox.RootSystem, error) {
	rs := rootbox.New()
	if err := cfg.Apply(rs); err != nil {
		return nil, err
	}
	if potRadius > 0 {
		depth := potDepth
		if depth <= 0 {
			depth = 100
		}
		rs.SetGeometry(sdf.Container{Radius: potRadius, Depth: depth})
	}
	if err := rs.Initialize(cfg.Plant.BasalRoots, cfg.Plant.ShootborneRoots); err != nil {
		return nil, err
	}
	return rs, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd, args)
	if err != nil {
		return err
	}

	rs, err := buildSystem(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("growing %s for %.0f days...\n", cfg.Name, cfg.Plant.SimTime)
	start := time.Now()
	if err := rs.Run(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg, rs)
	if err != nil {
		return err
	}

	total := 0.0
	for _, l := range rs.Scalar(rootbox.ScalarLength) {
		total += l
	}
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("roots: %d\n", rs.NumberOfRoots(false))
	fmt.Printf("nodes: %d\n", rs.NumberOfNodes())
	fmt.Printf("segments: %d\n", rs.NumberOfSegments())
	fmt.Printf("total length: %.1f cm\n", total)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPLANT\tTIME\tDAYS\tROOTS\tSEGMENTS\tLENGTH")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%d\t%d\t%.1f cm\n",
			run.ID,
			run.Plant,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.SimTime,
			run.Roots,
			run.Segments,
			run.Length,
		)
	}
	return w.Flush()
}

func showParams(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd, args)
	if err != nil {
		return err
	}

	fmt.Printf("plant: %s (seed depth %.1f cm, %.0f days at dt %.2g)\n\n",
		cfg.Name, cfg.Plant.SeedDepth, cfg.Plant.SimTime, cfg.Plant.Dt)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tNAME\tTROPISM\tGROWTH\tRATE\tRADIUS\tLATERALS\tSUCCESSORS")
	for _, rt := range cfg.RootTypes {
		succ := "-"
		if len(rt.Successors) > 0 {
			succ = ""
			for i, s := range rt.Successors {
				if i > 0 {
					succ += " "
				}
				succ += fmt.Sprintf("%d:%.2g", s.Type, s.P)
			}
		}
		tropism := rt.Tropism
		if tropism == "" {
			tropism = "gravi"
		}
		growth := rt.Growth
		if growth == "" {
			growth = "negexp"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2g cm/day\t%.2g cm\t%.0f\t%s\n",
			rt.Type, rt.Name, tropism, growth, rt.GrowthRate, rt.Radius, rt.MaxLaterals, succ)
	}
	return w.Flush()
}

// plotRun bins stored nodes by depth and draws root length per layer.
func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	nodes, _, err := st.LoadNodes(args[0])
	if err != nil {
		return err
	}
	if len(nodes) == 0 {
		return fmt.Errorf("no data to plot")
	}

	minZ := nodes[0].Z
	for _, p := range nodes {
		if p.Z < minZ {
			minZ = p.Z
		}
	}
	const bins = 30
	layer := -minZ / bins
	if layer <= 0 {
		layer = 1
	}
	hist := make([]float64, bins)
	for _, p := range nodes {
		b := int(-p.Z / layer)
		if b < 0 {
			b = 0
		}
		if b >= bins {
			b = bins - 1
		}
		hist[b]++
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("plant: %s\n", meta.Plant)
	fmt.Printf("nodes: %d, max depth %.1f cm\n\n", len(nodes), -minZ)
	fmt.Println(asciigraph.Plot(hist,
		asciigraph.Height(10),
		asciigraph.Width(70),
		asciigraph.Caption(fmt.Sprintf("nodes per %.1f cm depth layer (surface left)", layer)),
	))
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd, args)
	if err != nil {
		return err
	}

	e := ensemble.New(cfg, numRuns, seed)
	if potRadius > 0 {
		depth := potDepth
		if depth <= 0 {
			depth = 100
		}
		e.SetGeometry(sdf.Container{Radius: potRadius, Depth: depth})
	}

	fmt.Printf("growing %d realizations of %s...\n", numRuns, cfg.Name)
	start := time.Now()
	results, err := e.Run(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tROOTS\tSEGMENTS\tLENGTH\tDEPTH")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%.1f cm\t%.1f cm\n", r.Seed, r.Roots, r.Segments, r.Length, r.Depth)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	length, depth, roots := ensemble.Summarize(results)
	fmt.Printf("\nlength: %.1f ± %.1f cm\n", length.Mean, length.SD)
	fmt.Printf("depth:  %.1f ± %.1f cm\n", depth.Mean, depth.SD)
	fmt.Printf("roots:  %.1f ± %.1f\n", roots.Mean, roots.SD)
	return nil
}

// exportRun re-grows the run from its stored parameters and seed; the
// engine is deterministic, so this reproduces the stored geometry exactly.
func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	cfg, err := st.LoadConfig(args[0])
	if err != nil {
		return err
	}
	cfg.Plant.SimTime = meta.SimTime

	rs, err := buildSystem(cfg)
	if err != nil {
		return err
	}
	if err := rs.Run(); err != nil {
		return err
	}

	out := os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "vtp":
		return export.WriteVTP(out, rs)
	case "rsml":
		return export.WriteRSML(out, rs)
	case "svg":
		_, err := fmt.Fprint(out, export.SVG(rs, 600, 800))
		return err
	}
	return fmt.Errorf("unknown format %q (want vtp, rsml or svg)", format)
}

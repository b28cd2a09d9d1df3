package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/Pain0430/lead-network-toxicology/internal/analysis"
	"github.com/Pain0430/lead-network-toxicology/internal/config"
	"github.com/Pain0430/lead-network-toxicology/internal/export"
	"github.com/Pain0430/lead-network-toxicology/internal/kinetics"
	"github.com/Pain0430/lead-network-toxicology/internal/metrics"
	"github.com/Pain0430/lead-network-toxicology/internal/models"
	"github.com/Pain0430/lead-network-toxicology/internal/optim"
	"github.com/Pain0430/lead-network-toxicology/internal/sim"
	"github.com/Pain0430/lead-network-toxicology/internal/storage"
	"github.com/Pain0430/lead-network-toxicology/internal/store"
	"github.com/Pain0430/lead-network-toxicology/internal/tui"
)

var (
	dataDir    string
	configFile string
	// sweep settings
	t0          float64
	tf          float64
	outputEvery float64
	absTol      float64
	relTol      float64
	maxSteps    int
	workers     int
	timeout     time.Duration
	// dose grid
	doses   string
	preset  string
	varySpc string
	// dose-response
	target  string
	metric  string
	svgOut  string
	species string
	// calibration
	fitParams []string
	observed  float64
	fitDose   float64
)

var (
	errSweepFailed    = errors.New("one or more scenarios failed")
	errSweepCancelled = errors.New("sweep cancelled")
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "kinsim",
		Short:         "reaction-network kinetics lab for lead toxicity pathways",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".kinsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run a scenario sweep",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addSweepFlags(runCmd)
	runCmd.Flags().StringVar(&target, "target", "", "species for dose-response reporting")
	runCmd.Flags().StringVar(&metric, "metric", "peak", "dose-response metric (steady_state, peak, time_to_peak, auc)")
	runCmd.Flags().StringVar(&svgOut, "svg", "", "write dose-response curve to SVG file")

	validateCmd := &cobra.Command{
		Use:   "validate [model]",
		Short: "validate a network definition",
		Args:  cobra.MaximumNArgs(1),
		RunE:  validateModel,
	}
	validateCmd.Flags().StringVar(&configFile, "config", "", "network file path (yaml)")

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list builtin models",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range models.List() {
				fmt.Println(name)
			}
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list dose presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			sort.Strings(presets)
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %-10s %v\n", p, config.GetPreset(args[0], p))
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved sweeps",
		RunE:  listSweeps,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id] [scenario_id]",
		Short: "plot a stored scenario",
		Args:  cobra.ExactArgs(2),
		RunE:  plotScenario,
	}
	plotCmd.Flags().StringVar(&species, "species", "", "species to plot (default: all)")

	summarizeCmd := &cobra.Command{
		Use:   "summarize [run_id] [scenario_id]",
		Short: "per-species summary metrics for a stored scenario",
		Args:  cobra.ExactArgs(2),
		RunE:  summarizeScenario,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored sweep to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored sweep to long-format CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [scenario_id]",
		Short: "render a stored scenario to SVG",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&species, "species", "", "comma-separated species (default: all)")
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default: stdout)")

	fitCmd := &cobra.Command{
		Use:   "fit [model]",
		Short: "calibrate rate parameters against an observed value",
		Args:  cobra.MaximumNArgs(1),
		RunE:  fitParameters,
	}
	fitCmd.Flags().StringVar(&configFile, "config", "", "network file path (yaml)")
	fitCmd.Flags().StringArrayVar(&fitParams, "param", nil, "parameter grid as id=lo:hi:n (repeatable)")
	fitCmd.Flags().StringVar(&target, "target", "BloodPressure", "species whose metric is fitted")
	fitCmd.Flags().StringVar(&metric, "metric", "steady_state", "summary metric to fit")
	fitCmd.Flags().Float64Var(&observed, "observed", 0, "observed value to match")
	fitCmd.Flags().Float64Var(&fitDose, "dose", 0, "initial value of the varied species")
	fitCmd.Flags().StringVar(&varySpc, "vary", "Lead", "species whose initial value the dose sets")
	fitCmd.Flags().Float64Var(&tf, "tf", 24, "end time (hours)")

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "run a sweep with a live terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSweepFlags(liveCmd)

	rootCmd.AddCommand(runCmd, validateCmd, modelsCmd, presetsCmd, listCmd, plotCmd, summarizeCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, fitCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitStatus(err))
	}
}

func addSweepFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "network file path (yaml)")
	cmd.Flags().Float64Var(&t0, "t0", 0, "start time (hours)")
	cmd.Flags().Float64Var(&tf, "tf", 24, "end time (hours)")
	cmd.Flags().Float64Var(&outputEvery, "output-every", 1, "output grid spacing (hours)")
	cmd.Flags().Float64Var(&absTol, "abs-tol", 1e-8, "absolute tolerance")
	cmd.Flags().Float64Var(&relTol, "rel-tol", 1e-6, "relative tolerance")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "step budget per scenario")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (default: GOMAXPROCS)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "wall-clock limit for the whole sweep")
	cmd.Flags().StringVar(&doses, "doses", "", "comma-separated dose grid for the varied species")
	cmd.Flags().StringVar(&preset, "preset", "", "use a named dose preset")
	cmd.Flags().StringVar(&varySpc, "vary", "Lead", "species whose initial value the dose grid varies")
}

// exitStatus maps the error taxonomy onto process exit codes: 2 for
// definition or configuration problems, 3 for cancellation, 1 otherwise.
func exitStatus(err error) int {
	var valErr *kinetics.ValidationError
	var cfgErr *sim.ConfigError
	switch {
	case errors.As(err, &valErr), errors.As(err, &cfgErr):
		return 2
	case errors.Is(err, errSweepCancelled), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return 3
	default:
		return 1
	}
}

// loadNetwork resolves the model argument: a YAML network file when
// --config is set, a builtin model name otherwise.
func loadNetwork(args []string) (*kinetics.Model, *config.Document, error) {
	if configFile != "" {
		doc, err := config.Load(configFile)
		if err != nil {
			return nil, nil, err
		}
		m, err := kinetics.Build(doc.Definition())
		return m, doc, err
	}
	name := "lead_endothelial"
	if len(args) > 0 {
		name = args[0]
	}
	def, err := models.Get(name)
	if err != nil {
		return nil, nil, err
	}
	m, err := kinetics.Build(def)
	return m, nil, err
}

func sweepConfig(cmd *cobra.Command, doc *config.Document) sim.RunConfig {
	cfg := sim.DefaultRunConfig()
	if doc != nil {
		cfg = doc.RunConfig()
	}
	if cmd.Flags().Changed("t0") {
		cfg.T0 = t0
	}
	if cmd.Flags().Changed("tf") {
		cfg.TF = tf
	}
	if cmd.Flags().Changed("output-every") {
		cfg.OutputEvery = outputEvery
		cfg.OutputGrid = nil
	}
	if cmd.Flags().Changed("abs-tol") {
		cfg.AbsTol = absTol
	}
	if cmd.Flags().Changed("rel-tol") {
		cfg.RelTol = relTol
	}
	if maxSteps > 0 {
		cfg.MaxSteps = maxSteps
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	return cfg
}

func sweepScenarios(modelName string, doc *config.Document) ([]sim.Scenario, error) {
	if doc != nil {
		if scens := doc.Scenarios(); len(scens) > 0 {
			return scens, nil
		}
	}
	if preset != "" {
		grid := config.GetPreset(modelName, preset)
		if grid == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(modelName))
		}
		return sim.DoseGrid(varySpc, grid), nil
	}
	if doses != "" {
		grid, err := parseDoses(doses)
		if err != nil {
			return nil, err
		}
		return sim.DoseGrid(varySpc, grid), nil
	}
	return []sim.Scenario{{ID: "baseline"}}, nil
}

func parseDoses(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	grid := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad dose %q: %w", p, err)
		}
		grid = append(grid, v)
	}
	return grid, nil
}

func sweepContext() (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	if timeout > 0 {
		tctx, cancel := context.WithTimeout(ctx, timeout)
		return tctx, func() { cancel(); stop() }
	}
	return ctx, stop
}

func runSweep(cmd *cobra.Command, args []string) error {
	network, doc, err := loadNetwork(args)
	if err != nil {
		return err
	}

	cfg := sweepConfig(cmd, doc)
	scens, err := sweepScenarios(network.Name(), doc)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, cancel := sweepContext()
	defer cancel()

	fmt.Printf("running %s: %d scenarios over [%g, %g] h\n", network.Name(), len(scens), cfg.T0, cfg.TF)
	start := time.Now()

	sweeper := sim.NewSweeper(network, cfg)
	result, err := sweeper.Run(ctx, scens)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n\n", runID)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tSTATUS\tSTEPS\tREJECTED\tEVALS\tREASON")
	for _, id := range result.IDs() {
		o := result.Outcomes[id]
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\n",
			id, o.Status, o.Stats.StepsAccepted, o.Stats.StepsRejected, o.Stats.RateEvals, o.Reason)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if target != "" {
		if err := reportDoseResponse(result); err != nil {
			return err
		}
	}

	switch {
	case result.AnyCancelled():
		return errSweepCancelled
	case !result.AllCompleted():
		return errSweepFailed
	}
	return nil
}

func reportDoseResponse(result *sim.SweepResult) error {
	points, err := analysis.DoseResponse(result, varySpc, target, metric)
	if err != nil {
		return err
	}
	fmt.Printf("\ndose-response: %s %s vs initial %s\n", target, metric, varySpc)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DOSE\tRESPONSE")
	for _, p := range points {
		fmt.Fprintf(w, "%g\t%.6f\n", p.Dose, p.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if analysis.StrictlyIncreasing(points) {
		fmt.Println("monotonic: yes")
	} else {
		fmt.Println("monotonic: no")
	}
	if svgOut != "" {
		svg := export.DoseResponseSVG(points, 640, 400)
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
	}
	return nil
}

func validateModel(cmd *cobra.Command, args []string) error {
	network, _, err := loadNetwork(args)
	if err != nil {
		return err
	}

	fmt.Printf("%s: ok\n\n", network.Name())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "species\t%d\n", network.NumSpecies())
	fmt.Fprintf(w, "parameters\t%d\n", network.NumParameters())
	fmt.Fprintf(w, "reactions\t%d\n", network.NumReactions())
	return w.Flush()
}

func listSweeps(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no sweeps found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tSPAN\tSCENARIOS\tCOMPLETED")
	for _, run := range runs {
		completed := 0
		for _, sc := range run.Scenarios {
			if sc.Status == "completed" {
				completed++
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%g-%gh\t%d\t%d\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.T0, run.TF,
			len(run.Scenarios),
			completed,
		)
	}
	return w.Flush()
}

func plotScenario(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	ts, err := st.LoadSeries(args[0], args[1])
	if err != nil {
		return err
	}

	ids := ts.SpeciesIDs
	if species != "" {
		ids = strings.Split(species, ",")
	}

	fmt.Printf("run: %s  scenario: %s  samples: %d\n\n", args[0], args[1], ts.Len())
	for _, id := range ids {
		data, ok := ts.Series(id)
		if !ok {
			return fmt.Errorf("unknown species: %s", id)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s (uM) vs time", id)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func summarizeScenario(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	ts, err := st.LoadSeries(args[0], args[1])
	if err != nil {
		return err
	}

	summaries := analysis.Summarize(ts)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SPECIES\tSTEADY\tPEAK\tT_PEAK\tAUC")
	for _, id := range ts.SpeciesIDs {
		s := summaries[id]
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.2f\t%.4f\n", id, s.SteadyState, s.Peak, s.TimeToPeak, s.AUC)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	nonneg := metrics.NewNonNegativity(0)
	metrics.Apply(ts, nonneg)
	fmt.Printf("\nnon-negative samples: %.1f%%\n", nonneg.Value()*100)
	return nil
}

func fitParameters(cmd *cobra.Command, args []string) error {
	network, doc, err := loadNetwork(args)
	if err != nil {
		return err
	}
	if len(fitParams) == 0 {
		return errors.New("at least one --param grid is required")
	}

	ids := make([]string, 0, len(fitParams))
	ranges := make([][]float64, 0, len(fitParams))
	for _, spec := range fitParams {
		id, grid, err := parseParamGrid(spec)
		if err != nil {
			return err
		}
		ids = append(ids, id)
		ranges = append(ranges, grid)
	}

	cfg := sim.DefaultRunConfig()
	if doc != nil {
		cfg = doc.RunConfig()
	}
	if cmd.Flags().Changed("tf") {
		cfg.TF = tf
	}

	base := sim.Scenario{ID: "fit"}
	if fitDose > 0 {
		base.InitialOverrides = map[string]float64{varySpc: fitDose}
	}

	ctx, cancel := sweepContext()
	defer cancel()

	objective := optim.FitMetric(network, cfg, base, target, metric, observed)
	best, score, err := optim.NewGridSearch(ids, ranges).Search(ctx, objective)
	if err != nil {
		return err
	}

	fmt.Printf("fit %s %s to %g on %s\n\n", target, metric, observed, network.Name())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARAMETER\tVALUE")
	for _, id := range ids {
		fmt.Fprintf(w, "%s\t%g\n", id, best[id])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nresidual: %.6f\n", math.Sqrt(score))
	return nil
}

// parseParamGrid parses id=lo:hi:n into a parameter identifier and an
// evenly spaced candidate grid.
func parseParamGrid(spec string) (string, []float64, error) {
	id, rest, ok := strings.Cut(spec, "=")
	if !ok {
		return "", nil, fmt.Errorf("bad param spec %q: want id=lo:hi:n", spec)
	}
	parts := strings.Split(rest, ":")
	if len(parts) != 3 {
		return "", nil, fmt.Errorf("bad param spec %q: want id=lo:hi:n", spec)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return "", nil, fmt.Errorf("bad param spec %q: %w", spec, err)
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", nil, fmt.Errorf("bad param spec %q: %w", spec, err)
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", nil, fmt.Errorf("bad param spec %q: %w", spec, err)
	}
	return id, optim.Range(lo, hi, n), nil
}

// loadStoredResult rebuilds a SweepResult from a saved run so the export
// paths can share the in-memory encoders.
func loadStoredResult(st *storage.Store, runID string) (*sim.SweepResult, sim.RunConfig, error) {
	meta, err := st.Load(runID)
	if err != nil {
		return nil, sim.RunConfig{}, err
	}

	result := &sim.SweepResult{Model: meta.Model, Outcomes: make(map[string]*sim.Outcome)}
	for _, sc := range meta.Scenarios {
		out := &sim.Outcome{
			Scenario: sim.Scenario{ID: sc.ID},
			Reason:   sc.Reason,
			Stats: sim.Stats{
				StepsAccepted: sc.StepsAccepted,
				StepsRejected: sc.StepsRejected,
				RateEvals:     sc.RateEvals,
				Clamped:       sc.Clamped,
			},
		}
		switch sc.Status {
		case "completed":
			out.Status = sim.StatusCompleted
			ts, err := st.LoadSeries(runID, sc.ID)
			if err != nil {
				return nil, sim.RunConfig{}, err
			}
			out.Series = ts
		case "cancelled":
			out.Status = sim.StatusCancelled
		default:
			out.Status = sim.StatusFailed
		}
		result.Outcomes[sc.ID] = out
	}

	cfg := sim.RunConfig{T0: meta.T0, TF: meta.TF, AbsTol: meta.AbsTol, RelTol: meta.RelTol}
	return result, cfg, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	result, cfg, err := loadStoredResult(st, args[0])
	if err != nil {
		return err
	}
	return store.ExportJSON(os.Stdout, cfg, result)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	result, _, err := loadStoredResult(st, args[0])
	if err != nil {
		return err
	}
	return store.ExportCSV(os.Stdout, result)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	ts, err := st.LoadSeries(args[0], args[1])
	if err != nil {
		return err
	}

	ids := ts.SpeciesIDs
	if species != "" {
		ids = strings.Split(species, ",")
	}

	svg := export.TimeSeriesSVG(ts, ids, 800, 480)
	if svgOut == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	network, doc, err := loadNetwork(args)
	if err != nil {
		return err
	}

	cfg := sweepConfig(cmd, doc)
	if err := cfg.Validate(); err != nil {
		return err
	}
	scens, err := sweepScenarios(network.Name(), doc)
	if err != nil {
		return err
	}

	return tui.Run(network, cfg, scens)
}

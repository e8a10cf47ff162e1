package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Yannngn/theboys/sim"
	"github.com/Yannngn/theboys/sim/store"
	"github.com/Yannngn/theboys/sim/trace"
	"github.com/Yannngn/theboys/sim/workload"
)

var (
	configPath        string // Path to a YAML world spec
	seed              int64  // Master seed for world generation and event draws
	simulationHorizon int64  // Total simulation time (in ticks)
	logLevel          string // Log verbosity level
	traceOut          string // JSONL trace destination (".zst" compresses)
	dbPath            string // SQLite export destination
	quiet             bool   // Skip the report tables
	runsDBPath        string // SQLite database listed by `runs`
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "theboys",
	Short: "Discrete-event simulator for heroes, bases and missions",
}

// runCmd generates a world and runs it to the horizon
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the hero simulation",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		spec, err := resolveSpec(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		opts := runOptions{TraceOut: traceOut, DBPath: dbPath, Quiet: quiet}
		if _, err := runSimulation(cmd.Context(), spec, opts, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// validateCmd checks a world spec without running it
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a world spec file",
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := resolveSpec(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d heroes, %d bases, %d missions, horizon %d\n",
			spec.Heroes, spec.Bases, spec.Missions, spec.Horizon)
		return nil
	},
}

// runsCmd lists runs exported with --db
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List runs stored in a SQLite export",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listRuns(cmd.Context(), runsDBPath, cmd.OutOrStdout())
	},
}

// listRuns prints the runs stored at path. A missing file is an error, not
// an empty database.
func listRuns(ctx context.Context, path string, out io.Writer) error {
	st, err := store.OpenExistingSQLite(path)
	if err != nil {
		return err
	}
	defer st.Close()
	runs, err := st.ListRuns(ctx)
	if err != nil {
		return err
	}
	printRuns(out, runs)
	return nil
}

// resolveSpec layers defaults, the YAML file, THEBOYS_* variables and
// explicitly set flags, in that order, and validates the result.
func resolveSpec(cmd *cobra.Command) (*workload.WorldSpec, error) {
	spec := workload.DefaultWorldSpec()
	if configPath != "" {
		loaded, err := workload.LoadWorldSpec(configPath)
		if err != nil {
			return nil, err
		}
		spec = loaded
	}
	if err := spec.ApplyEnv(); err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Lookup("seed") != nil && flags.Changed("seed") {
		spec.Seed = seed
	}
	if flags.Lookup("horizon") != nil && flags.Changed("horizon") {
		spec.Horizon = simulationHorizon
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid world spec: %w", err)
	}
	return spec, nil
}

type runOptions struct {
	TraceOut string
	DBPath   string
	Quiet    bool
}

// runSimulation wires recorders around a generated world, runs it and
// emits the report and any requested exports.
func runSimulation(ctx context.Context, spec *workload.WorldSpec, opts runOptions, out io.Writer) (sim.Report, error) {
	startTime := time.Now()
	summary := trace.NewTraceSummary()
	recorders := []trace.Recorder{summary}

	if logrus.IsLevelEnabled(logrus.InfoLevel) {
		recorders = append(recorders, trace.NewLogRecorder(logrus.StandardLogger()))
	}

	var jsonl *trace.JSONLRecorder
	if opts.TraceOut != "" {
		var err error
		jsonl, err = trace.CreateJSONL(opts.TraceOut)
		if err != nil {
			return sim.Report{}, err
		}
		recorders = append(recorders, jsonl)
	}

	var export *store.RunWriter
	if opts.DBPath != "" {
		st, err := store.OpenSQLite(opts.DBPath)
		if err != nil {
			closeJSONL(jsonl)
			return sim.Report{}, fmt.Errorf("opening export db: %w", err)
		}
		defer st.Close()
		export, err = st.BeginRun(ctx, "", spec.Seed, time.Time{})
		if err != nil {
			closeJSONL(jsonl)
			return sim.Report{}, fmt.Errorf("exporting run: %w", err)
		}
		recorders = append(recorders, export)
	}

	s, err := workload.NewSimulation(spec, trace.Multi(recorders...))
	if err != nil {
		closeJSONL(jsonl)
		if export != nil {
			export.Abort()
		}
		return sim.Report{}, err
	}
	rep := s.Run()

	if jsonl != nil {
		if err := jsonl.Close(); err != nil {
			if export != nil {
				export.Abort()
			}
			return rep, fmt.Errorf("writing trace: %w", err)
		}
		logrus.Infof("Wrote %d records to %s", jsonl.Count(), opts.TraceOut)
	}

	if !opts.Quiet {
		printReport(out, rep, summary, time.Since(startTime))
	}

	if export != nil {
		id, err := export.Finish(rep)
		if err != nil {
			return rep, fmt.Errorf("exporting run: %w", err)
		}
		logrus.Infof("Exported run %s to %s", id, opts.DBPath)
	}
	return rep, nil
}

func closeJSONL(jsonl *trace.JSONLRecorder) {
	if jsonl != nil {
		_ = jsonl.Close()
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML world spec (defaults are used when empty)")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Master seed; overrides the world file's seed when set")
	runCmd.Flags().Int64Var(&simulationHorizon, "horizon", sim.DefaultHorizon, "Total simulation horizon (in ticks); overrides the world file when set")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic); info streams every event")
	runCmd.Flags().StringVar(&traceOut, "trace-out", "", "Write every event as JSON lines to this file (zstd-compressed if it ends in .zst)")
	runCmd.Flags().StringVar(&dbPath, "db", "", "Export the run to this SQLite database; events are streamed into one transaction and committed at the end")
	runCmd.Flags().BoolVar(&quiet, "quiet", false, "Do not print the report tables")

	validateCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML world spec")

	runsCmd.Flags().StringVar(&runsDBPath, "db", "theboys.db", "SQLite database written by run --db")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(runsCmd)
}

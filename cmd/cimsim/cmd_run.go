package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/coherent-lab/cimsim/internal/config"
	"github.com/coherent-lab/cimsim/internal/integrate"
	"github.com/coherent-lab/cimsim/internal/logging"
	"github.com/coherent-lab/cimsim/internal/matio"
	"github.com/coherent-lab/cimsim/internal/store"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute a simulation run",
		Long: `Execute a simulation run described by a YAML config file.

The config names the coupling-matrix CSV, the optional initial-state CSV,
the scalar parameters, and the backend. The final state is written to
<out dir>/final.csv; the sequential backend additionally writes the full
trajectory to <out dir>/trajectory.csv. Every completed run is recorded
in <out dir>/cimsim.db.

Examples:
  cimsim run --config run.yaml
  cimsim run --config run.yaml --backend fused --seed 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			// Flag overrides beat both file and environment.
			if cmd.Flags().Changed("backend") {
				cfg.Backend, _ = cmd.Flags().GetString("backend")
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed, _ = cmd.Flags().GetUint64("seed")
			}
			if cmd.Flags().Changed("out") {
				cfg.OutDir, _ = cmd.Flags().GetString("out")
			}

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			return runSimulation(cmd.Context(), cfg, jsonOut)
		},
	}

	cmd.Flags().String("config", "run.yaml", "Run config file (YAML)")
	cmd.Flags().String("backend", "", "Backend override: sequential or fused")
	cmd.Flags().Uint64("seed", 0, "Seed override")
	cmd.Flags().String("out", "", "Output directory override")

	return cmd
}

func runSimulation(ctx context.Context, cfg *config.RunConfig, jsonOut bool) error {
	log := logging.NewLogger(cfg.Logging.Level, os.Stderr)
	trace := logging.NewTraceLogger(cfg.OutDir, cfg.Logging.Level)
	defer trace.Close()

	target, err := matio.ReadMatrix(cfg.CouplingFile)
	if err != nil {
		return err
	}
	r, _ := target.Dims()
	if r != cfg.N {
		return fmt.Errorf("coupling matrix is %dx%d but config says n=%d", r, r, cfg.N)
	}

	x0 := make([]float64, cfg.N)
	if cfg.InitialFile != "" {
		x0, err = matio.ReadVector(cfg.InitialFile)
		if err != nil {
			return err
		}
		if len(x0) != cfg.N {
			return fmt.Errorf("initial state has length %d but config says n=%d", len(x0), cfg.N)
		}
	}

	params := integrate.Params{
		Alpha:         cfg.Alpha,
		Pump:          cfg.Pump,
		CouplingCoeff: cfg.CouplingCoeff,
		NoiseLevel:    cfg.NoiseLevel,
		Dt:            cfg.Dt,
		TotalTime:     cfg.TotalTime,
		Phases:        cfg.Phases,
		Seed:          cfg.Seed,
	}

	backend, err := integrate.New(cfg.Backend, integrate.Options{Log: log, Trace: trace})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	start := time.Now()
	tr, final, err := backend.Run(x0, target, params)
	if err != nil {
		return err
	}
	wall := time.Since(start)

	finalPath := filepath.Join(cfg.OutDir, "final.csv")
	if err := matio.WriteVector(finalPath, final); err != nil {
		return err
	}
	trajectoryPath := ""
	if tr != nil {
		trajectoryPath = filepath.Join(cfg.OutDir, "trajectory.csv")
		if err := matio.WriteTrajectory(trajectoryPath, tr); err != nil {
			return err
		}
	}

	runStore, err := store.Open(cfg.OutDir)
	if err != nil {
		return err
	}
	defer runStore.Close()

	rec, err := runStore.SaveRun(ctx, store.RunRecord{
		Backend:       cfg.Backend,
		N:             cfg.N,
		Phases:        cfg.Phases,
		NumSteps:      params.NumSteps(),
		Seed:          cfg.Seed,
		Alpha:         cfg.Alpha,
		Pump:          cfg.Pump,
		CouplingCoeff: cfg.CouplingCoeff,
		NoiseLevel:    cfg.NoiseLevel,
		Dt:            cfg.Dt,
		TotalTime:     cfg.TotalTime,
		FinalState:    final,
		Wall:          wall,
	})
	if err != nil {
		return err
	}

	log.Info("run complete",
		"id", rec.ID,
		"backend", cfg.Backend,
		"steps", params.NumSteps(),
		"wall", wall,
	)

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"id":          rec.ID,
			"backend":     cfg.Backend,
			"steps":       params.NumSteps(),
			"final":       finalPath,
			"trajectory":  trajectoryPath,
			"wall_ms":     wall.Milliseconds(),
			"final_state": final,
		})
	}

	fmt.Printf("run %s: %d steps (%s backend) in %s\n", rec.ID, params.NumSteps(), cfg.Backend, wall.Round(time.Millisecond))
	fmt.Printf("final state: %s\n", finalPath)
	if trajectoryPath != "" {
		fmt.Printf("trajectory:  %s\n", trajectoryPath)
	}
	return nil
}

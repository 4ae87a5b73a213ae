// Package main tunes band smoothstep edges so every color stop gets a fair
// share of the frame.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/gradient/config"
)

// formatDuration formats a duration as MM:SS.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := d / time.Minute
	d -= m * time.Minute
	return fmt.Sprintf("%dm%02ds", m, d/time.Second)
}

// sampleTimes spreads n sample times over span seconds.
func sampleTimes(n int, span float64) []float64 {
	if n < 1 {
		n = 1
	}
	times := make([]float64, n)
	for i := range times {
		times[i] = span * float64(i) / float64(n)
	}
	return times
}

func newMethod(name string, dim, population int) (optimize.Method, error) {
	switch name {
	case "cmaes":
		if population == 0 {
			population = 4 + int(3.0*float64(dim)/2.0)
		}
		return &optimize.CmaEsChol{InitStepSize: 0.2, Population: population}, nil
	case "nelder-mead":
		return &optimize.NelderMead{}, nil
	}
	return nil, fmt.Errorf("unknown method %q (want cmaes or nelder-mead)", name)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	methodName := flag.String("method", "cmaes", "Optimizer: cmaes or nelder-mead")
	maxEvals := flag.Int("max-evals", 300, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	samples := flag.Int("samples", 6, "Field times sampled per evaluation")
	span := flag.Float64("span", 120, "Seconds of field time covered by the samples")
	grid := flag.Int("grid", 24, "Coverage probe grid size per axis")
	contrast := flag.Float64("contrast", 1.0, "Weight of spatial variation against balance")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	base := cfg.FieldParams()

	params := NewParamVector(cfg, base.Stops())
	dim := params.Dim()
	if dim == 0 {
		log.Fatal("no bands to tune")
	}
	evaluator := NewFitnessEvaluator(params, base, sampleTimes(*samples, *span), *grid, *contrast)

	method, err := newMethod(*methodName, dim, *population)
	if err != nil {
		log.Fatal(err)
	}

	// Open log file
	logPath := filepath.Join(*outputDir, "tune_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()

	header := []string{"eval", "fitness", "balance", "variation"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	logWriter.Write(header)

	evalCount := 0
	bestFitness := evaluator.Evaluate(params.DefaultVector())
	bestParams := params.DefaultVector()
	fmt.Printf("Baseline: fitness=%.4f balance=%.3f variation=%.3f\n",
		bestFitness, evaluator.LastBalance(), evaluator.LastVariation())
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			fitness := evaluator.Evaluate(raw)
			evalCount++

			clamped := params.Clamp(raw)
			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = clamped
			}

			row := []string{
				strconv.Itoa(evalCount),
				fmt.Sprintf("%.6f", fitness),
				fmt.Sprintf("%.6f", evaluator.LastBalance()),
				fmt.Sprintf("%.6f", evaluator.LastVariation()),
			}
			for _, v := range clamped {
				row = append(row, fmt.Sprintf("%.6f", v))
			}
			logWriter.Write(row)
			logWriter.Flush()

			if evalCount%10 == 0 {
				elapsed := time.Since(startTime)
				remaining := time.Duration(*maxEvals-evalCount) * (elapsed / time.Duration(evalCount))
				fmt.Printf("Eval %d/%d: balance=%.3f variation=%.3f (best=%.4f) | elapsed: %s, ETA: %s\n",
					evalCount, *maxEvals, evaluator.LastBalance(), evaluator.LastVariation(), bestFitness,
					formatDuration(elapsed), formatDuration(remaining))
			}
			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // the evaluator keeps per-call state
	}

	fmt.Printf("Tuning %d band edges with %s, max_evals=%d\n", dim, *methodName, *maxEvals)
	if _, err := optimize.Minimize(problem, params.Normalize(params.DefaultVector()), settings, method); err != nil {
		log.Printf("optimization ended: %v", err)
	}

	fmt.Printf("\nTuning complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.4f\n", bestFitness)
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.4f\n", spec.Path, bestParams[i])
	}

	params.ApplyToConfig(cfg, bestParams)
	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := cfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}

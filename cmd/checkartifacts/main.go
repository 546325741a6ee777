// Command checkartifacts validates a fitted scaler and model pair before it
// is deployed: both files load, their column lists match the feature schema,
// and every preset plus the corners of the input space score to a finite,
// consistently classified value.
//
// Usage:
//
//	go run ./cmd/checkartifacts \
//	  -model artifacts/model.json \
//	  -scaler artifacts/scaler.json \
//	  -expect "Jakarta (High Risk)=High"
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/couchcryptid/heat-risk-predictor/internal/adapter/artifact"
	"github.com/couchcryptid/heat-risk-predictor/internal/domain"
	"github.com/couchcryptid/heat-risk-predictor/internal/observability"
	"github.com/couchcryptid/heat-risk-predictor/internal/pipeline"
)

// expectations collects repeated -expect "Preset=Tier" flags.
type expectations map[string]domain.RiskTier

func (e expectations) String() string {
	parts := make([]string, 0, len(e))
	for name, tier := range e {
		parts = append(parts, name+"="+tier.String())
	}
	slices.Sort(parts)
	return strings.Join(parts, ",")
}

func (e expectations) Set(v string) error {
	name, tierText, ok := strings.Cut(v, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return fmt.Errorf("want Preset=Tier, got %q", v)
	}
	var tier domain.RiskTier
	if err := tier.UnmarshalText([]byte(strings.TrimSpace(tierText))); err != nil {
		return err
	}
	e[strings.TrimSpace(name)] = tier
	return nil
}

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	modelPath := flag.String("model", "artifacts/model.json", "path to the model artifact")
	scalerPath := flag.String("scaler", "artifacts/scaler.json", "path to the scaler artifact")
	expect := expectations{}
	flag.Var(expect, "expect", `expected tier for a preset, "Preset=Tier" (repeatable)`)
	flag.Parse()

	os.Exit(run(os.Stdout, *modelPath, *scalerPath, expect))
}

func run(w io.Writer, modelPath, scalerPath string, expect expectations) int {
	fmt.Fprintln(w, "=== Heat Risk Artifact Validation ===")
	fmt.Fprintln(w)

	scaler, err := artifact.LoadScaler(scalerPath)
	if err != nil {
		fmt.Fprintf(w, "FATAL: %v\n", err)
		return 1
	}
	model, err := artifact.LoadModel(modelPath)
	if err != nil {
		fmt.Fprintf(w, "FATAL: %v\n", err)
		return 1
	}
	fmt.Fprintf(w, "Scaler: %s (%d columns)\n", scalerPath, len(scaler.Columns()))
	fmt.Fprintf(w, "Model:  %s (%s, %d features)\n", modelPath, model.Kind(), len(model.FeatureNames()))
	fmt.Fprintf(w, "Version: %s\n\n", artifact.Version(scaler, model))

	registry, err := domain.NewPresetRegistry(domain.DefaultPresets())
	if err != nil {
		fmt.Fprintf(w, "FATAL: %v\n", err)
		return 1
	}
	p := pipeline.New(
		domain.NewInputCollector(registry),
		pipeline.Artifacts{Scaler: scaler, Model: model, Version: artifact.Version(scaler, model)},
		nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		observability.NewMetricsForTesting(),
	)

	phases := []*phase{
		validateColumns("Scaler columns", domain.ScaledColumns(), scaler.Columns()),
		validateColumns("Model features", domain.FeatureColumns(), model.FeatureNames()),
		validatePresets(w, p, registry, expect),
		validateCorners(p),
	}

	fmt.Fprintln(w)
	allPassed := true
	for _, ph := range phases {
		status := "\033[32mPASS\033[0m"
		if !ph.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(ph.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", ph.name, status)
	}

	for _, ph := range phases {
		if ph.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", ph.name)
		for i, e := range ph.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}

func validateColumns(name string, want, got []string) *phase {
	ph := &phase{name: name}
	if len(want) != len(got) {
		ph.errorf("expected %d columns, artifact has %d", len(want), len(got))
		return ph
	}
	for i := range want {
		if want[i] != got[i] {
			ph.errorf("column %d is %q, expected %q", i, got[i], want[i])
		}
	}
	return ph
}

func validatePresets(w io.Writer, p *pipeline.Pipeline, registry *domain.PresetRegistry, expect expectations) *phase {
	ph := &phase{name: "Preset predictions"}

	for name := range expect {
		if name != domain.CustomPreset {
			if _, ok := registry.Lookup(name); !ok {
				ph.errorf("-expect names unknown preset %q", name)
			}
		}
	}

	fmt.Fprintf(w, "  %-32s %10s  %s\n", "Preset", "Score", "Tier")
	for _, name := range registry.Names() {
		result, err := p.Predict(context.Background(), domain.FormInput{Preset: name})
		if err != nil {
			ph.errorf("%s: %v", name, err)
			continue
		}
		fmt.Fprintf(w, "  %-32s %10.3f  %s\n", name, result.Score, result.Tier)

		if got := domain.ClassifyRisk(result.Score); got != result.Tier {
			ph.errorf("%s: tier %s does not match score %.3f (%s)", name, result.Tier, result.Score, got)
		}
		if want, ok := expect[name]; ok && want != result.Tier {
			ph.errorf("%s: expected tier %s, got %s (score %.3f)", name, want, result.Tier, result.Score)
		}
	}
	return ph
}

// validateCorners scores the all-minimum and all-maximum records under every
// land cover. Any finite output passes.
func validateCorners(p *pipeline.Pipeline) *phase {
	ph := &phase{name: "Input range corners"}

	corners := map[string]func(domain.FieldSpec) float64{
		"min": func(s domain.FieldSpec) float64 { return s.Min },
		"max": func(s domain.FieldSpec) float64 { return s.Max },
	}
	for _, label := range []string{"min", "max"} {
		overrides := make(map[domain.Field]float64)
		for _, s := range domain.FieldSpecs() {
			overrides[s.Field] = corners[label](s)
		}
		for _, lc := range domain.LandCovers() {
			result, err := p.Predict(context.Background(), domain.FormInput{
				Overrides: overrides,
				LandCover: lc.String(),
			})
			if err != nil {
				ph.errorf("%s/%s: %v", label, lc, err)
				continue
			}
			if math.IsNaN(result.Score) || math.IsInf(result.Score, 0) {
				ph.errorf("%s/%s: non-finite score %v", label, lc, result.Score)
			}
		}
	}
	return ph
}

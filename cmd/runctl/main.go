// Command runctl analyzes GPX files locally and issues API tokens for
// development.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/jengzang/pace-analyzer/internal/analysis"
	"github.com/jengzang/pace-analyzer/internal/config"
	"github.com/jengzang/pace-analyzer/internal/middleware"
	"github.com/jengzang/pace-analyzer/internal/models"
)

const usage = `usage:
  runctl analyze [-pace 10] [-age 30] [-resting-hr 60] [-weight 70] [-sex unspecified] [-json] file.gpx
  runctl token [-ttl 24h] <user-id>
`

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "runctl:", err)
		os.Exit(1)
	}
	if err := run(os.Args[1:], os.Stdout, cfg); err != nil {
		fmt.Fprintln(os.Stderr, "runctl:", err)
		os.Exit(1)
	}
}

var errUsage = errors.New("invalid usage")

func run(args []string, out io.Writer, cfg *config.Config) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return errUsage
	}

	switch args[0] {
	case "analyze":
		return analyzeCmd(args[1:], out, cfg)
	case "token":
		return tokenCmd(args[1:], out, cfg)
	default:
		fmt.Fprint(out, usage)
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

func analyzeCmd(args []string, out io.Writer, cfg *config.Config) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(out)
	pace := fs.Float64("pace", cfg.DefaultPaceLimit, "pace limit in minutes per mile")
	age := fs.Int("age", models.DefaultAge, "runner age, 0 if unknown")
	restingHR := fs.Int("resting-hr", models.DefaultRestingHR, "resting heart rate, 0 if unknown")
	weight := fs.Float64("weight", models.DefaultWeightKg, "weight in kg, 0 if unknown")
	sex := fs.String("sex", models.DefaultSex, "male, female or unspecified")
	asJSON := fs.Bool("json", false, "print the full result as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: analyze takes exactly one GPX file", errUsage)
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("failed to read GPX file: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	res, err := analysis.Analyze(data, analysis.Params{
		PaceLimit: *pace,
		Athlete: analysis.Athlete{
			Age:       *age,
			RestingHR: *restingHR,
			WeightKg:  *weight,
			Sex:       *sex,
		},
		Location:       loc,
		SampleInterval: cfg.SampleInterval(),
	})
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printSummary(out, res)
	return nil
}

func printSummary(out io.Writer, res *analysis.Result) {
	fmt.Fprintf(out, "Distance:   %.2f mi (%.1f%% fast, %.1f%% slow)\n", res.TotalDistance, res.PercentageFast, res.PercentageSlow)
	fmt.Fprintf(out, "Duration:   %s\n", formatMinutes(res.DurationMinutes))
	fmt.Fprintf(out, "Avg pace:   %s /mi (limit %s)\n", formatMinutes(res.AvgPace), formatMinutes(res.PaceLimit))
	fmt.Fprintf(out, "Segments:   %d fast, %d slow\n", len(res.FastSegments), len(res.SlowSegments))
	if res.AvgHRAll > 0 {
		fmt.Fprintf(out, "Avg HR:     %.0f bpm (fast %.0f, slow %.0f)\n", res.AvgHRAll, res.AvgHRFast, res.AvgHRSlow)
	}
	if res.MaxHR != nil {
		fmt.Fprintf(out, "Max HR:     %d bpm\n", *res.MaxHR)
	}
	if res.VO2Max != nil {
		fmt.Fprintf(out, "VO2max:     %.1f\n", *res.VO2Max)
	}
	if res.TrainingLoad != nil {
		fmt.Fprintf(out, "Load:       %.0f TRIMP\n", *res.TrainingLoad)
	}
	if res.RecoveryTime != nil {
		fmt.Fprintf(out, "Recovery:   %.0f h\n", *res.RecoveryTime)
	}

	for _, s := range res.MileSplits {
		fmt.Fprintf(out, "Mile %-3d    %s\n", s.MileNumber, formatMinutes(s.SplitTimeMinutes))
	}
	for _, p := range res.RacePredictions {
		fmt.Fprintf(out, "%-6s      %s\n", p.Name, formatMinutes(p.TimeMinutes))
	}
	if res.SkippedPoints > 0 {
		fmt.Fprintf(out, "Skipped %d invalid trackpoints\n", res.SkippedPoints)
	}
}

// formatMinutes renders fractional minutes as h:mm:ss or m:ss
func formatMinutes(minutes float64) string {
	d := time.Duration(minutes * float64(time.Minute)).Round(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func tokenCmd(args []string, out io.Writer, cfg *config.Config) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(out)
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: token takes exactly one user id", errUsage)
	}

	tok, err := middleware.IssueToken(cfg.JWTSecret, fs.Arg(0), *ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, tok)
	return nil
}

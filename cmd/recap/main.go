// Command recap generates a fantasy football weekly recap from the command
// line and renders it to audio.
//
// Usage:
//
//	recap
//	recap --year 2024 --week 7
//	recap --week 7 --personality roast
//	recap check
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/fantasy-recap/internal/app"
	"github.com/albapepper/fantasy-recap/internal/config"
	"github.com/albapepper/fantasy-recap/internal/pipeline"
	"github.com/albapepper/fantasy-recap/internal/recap"
)

// errCancelled marks a run the user interrupted.
var errCancelled = errors.New("cancelled")

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	err := rootCmd(os.Stdout).Execute()
	switch {
	case err == nil:
	case errors.Is(err, errCancelled):
		fmt.Fprintln(os.Stdout, "\n\n⚠️  Operation cancelled by user.")
	default:
		fmt.Fprintf(os.Stderr, "\n❌ Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd(out io.Writer) *cobra.Command {
	var year, week int
	var personality string

	cmd := &cobra.Command{
		Use:           "recap",
		Short:         "Generate a fantasy football weekly recap",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := recap.ParsePersonality(personality)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "🎯 Fantasy Football Weekly Recap Generator")
			fmt.Fprintln(out, "Loading credentials and connecting to ESPN...")

			return run(func(ctx context.Context, a *app.App) error {
				res, err := a.Generator.Generate(ctx, pipeline.Request{Year: year, Week: week, Personality: p})
				if err != nil {
					if ctx.Err() != nil {
						return errCancelled
					}
					return err
				}
				printRecap(out, res, a.Artifacts.Dir)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "Season year (default: LEAGUE_YEAR or the current year)")
	cmd.Flags().IntVar(&week, "week", 0, "Week to recap (default: the last completed week)")
	cmd.Flags().StringVar(&personality, "personality", "",
		"Commentator voice: "+recap.PersonalityNames()+" (default: template recap)")

	cmd.AddCommand(checkCmd(out))
	return cmd
}

func checkCmd(out io.Writer) *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify credentials and the ESPN league connection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, a *app.App) error {
				fmt.Fprintln(out, "🔐 Credentials loaded")
				fmt.Fprintf(out, "✅ LEAGUE_ID: %d\n", a.Config.LeagueID)
				fmt.Fprintf(out, "✅ ESPN_S2: %s\n", mask(a.Config.ESPNS2))
				fmt.Fprintf(out, "✅ SWID: %s\n", mask(a.Config.SWID))

				fmt.Fprintln(out, "\n🌐 Testing ESPN API connection...")
				lg, err := a.Generator.LeagueInfo(ctx, year)
				if err != nil {
					if ctx.Err() != nil {
						return errCancelled
					}
					return err
				}
				printLeague(out, lg)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "Season year (default: LEAGUE_YEAR or the current year)")
	return cmd
}

// run loads configuration, wires the app and calls fn under a context that
// is cancelled on interrupt.
func run(fn func(ctx context.Context, a *app.App) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := app.NewLogger(cfg, os.Stderr)

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer a.Close()

	return fn(ctx, a)
}

func printRecap(w io.Writer, res *pipeline.Result, dir string) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w, "\n"+rule)
	fmt.Fprintln(w, "FANTASY FOOTBALL WEEKLY RECAP")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, res.Text)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "\n✅ Successfully generated audio recap: %s\n", res.Filename)
	fmt.Fprintf(w, "📁 File saved in: %s\n", dir)
}

func printLeague(w io.Writer, lg recap.League) {
	fmt.Fprintf(w, "✅ Successfully connected to league: %s\n", lg.Name)
	fmt.Fprintf(w, "✅ Season: %d\n", lg.Year)
	fmt.Fprintf(w, "✅ Current week: %d\n", lg.CurrentWeek)
	if t := lg.TargetWeek(); t > 0 {
		fmt.Fprintf(w, "✅ Next recap covers week %d\n", t)
	} else {
		fmt.Fprintln(w, "⚠️  Season has not started; no completed week to recap yet")
	}
}

func mask(s string) string {
	if len(s) <= 8 {
		return strings.Repeat("*", len(s))
	}
	return s[:8] + "..."
}

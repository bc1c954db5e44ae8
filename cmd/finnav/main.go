package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/finnav/finnav/internal/calculation"
	"github.com/finnav/finnav/internal/config"
	"github.com/finnav/finnav/internal/domain"
	"github.com/finnav/finnav/internal/output"
	"github.com/finnav/finnav/internal/server"
	"github.com/finnav/finnav/internal/session"
	"github.com/finnav/finnav/internal/storage"
	"github.com/finnav/finnav/internal/tui"
	"github.com/finnav/finnav/pkg/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "finnav",
	Short: "Financial self-assessment CLI",
	Long:  "Scores a household financial profile and runs the pension, financing, and risk deep dives",
}

var scoreCmd = &cobra.Command{
	Use:   "score [profile-file]",
	Short: "Score a household profile",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parser := config.NewInputParser()
		profile, err := parser.LoadProfile(args[0])
		if err != nil {
			log.Fatal(err)
		}

		scored := calculation.CalculateScores(*profile)
		scored.Meta.IsFinished = true

		printReport(cmd, scored)
	},
}

var pensionCmd = &cobra.Command{
	Use:   "pension [input-file]",
	Short: "Run the pension gap analysis",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parser := config.NewInputParser()
		in, err := parser.LoadPensionInput(args[0])
		if err != nil {
			log.Fatal(err)
		}

		res := calculation.CalculatePension(*in)
		printResult(cmd, res)
	},
}

var financingCmd = &cobra.Command{
	Use:   "financing [input-file]",
	Short: "Run the mortgage affordability check",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parser := config.NewInputParser()
		in, err := parser.LoadFinancingInput(args[0])
		if err != nil {
			log.Fatal(err)
		}

		res := calculation.CalculateFinancing(*in)
		printResult(cmd, res)
	},
}

var riskCmd = &cobra.Command{
	Use:   "risk [input-file]",
	Short: "Run the income-shock runway analysis",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parser := config.NewInputParser()
		in, err := parser.LoadRiskInput(args[0])
		if err != nil {
			log.Fatal(err)
		}

		res := calculation.CalculateRisk(*in)
		printResult(cmd, res)
	},
}

var affordabilityCmd = &cobra.Command{
	Use:   "affordability [input-file]",
	Short: "Find the highest affordable purchase price",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parser := config.NewInputParser()
		in, err := parser.LoadFinancingInput(args[0])
		if err != nil {
			log.Fatal(err)
		}

		target, _ := cmd.Flags().GetString("target")
		res, err := calculation.MaxAffordablePrice(cmd.Context(), calculation.AffordabilityRequest{
			Input:  *in,
			Target: domain.Status(target),
		})
		if err != nil {
			log.Fatal(err)
		}

		if !res.Converged {
			fmt.Fprintln(os.Stdout, "No purchase price meets the target: existing obligations already break the check.")
			return
		}
		fmt.Fprintf(os.Stdout, "Highest %s purchase price: %s\n", target, output.FormatCurrency(res.MaxPurchasePrice))
		printResult(cmd, res.Result)
	},
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the interactive intake wizard",
	Run: func(cmd *cobra.Command, args []string) {
		p := tea.NewProgram(tui.NewModel(), tea.WithAltScreen())
		final, err := p.Run()
		if err != nil {
			log.Fatal(err)
		}

		// Print the scored report after leaving the alt screen.
		if m, ok := final.(tui.Model); ok && m.Done() {
			printReport(cmd, m.Profile())
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the assessment HTTP service",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadService()
		if err != nil {
			log.Fatal(err)
		}

		lg := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.DevMode})
		logger.SetGlobalLogger(lg)

		db, err := storage.Open(cfg.DatabasePath())
		if err != nil {
			lg.Fatal().Err(err).Msg("Failed to open leads database")
		}
		defer db.Close()

		srv := server.New(server.Config{
			Log:      lg,
			Sessions: session.NewStore(),
			Leads:    storage.NewLeadRepository(db, lg),
			Port:     cfg.Port,
			DevMode:  cfg.DevMode,
		})

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			lg.Fatal().Err(err).Msg("Server failed")
		case sig := <-stop:
			lg.Info().Str("signal", sig.String()).Msg("Shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				lg.Error().Err(err).Msg("Shutdown failed")
			}
		}
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "finnav %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Version)
			}
		},
	}
}

// printReport renders a scored profile in the requested format.
func printReport(cmd *cobra.Command, p domain.Profile) {
	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = "console"
	}

	formatter, err := output.NewFormatter(format)
	if err != nil {
		log.Fatal(err)
	}

	data, err := formatter.Format(output.BuildReport(p))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprintln(os.Stdout, string(data))
}

// printResult renders a single module result as YAML.
func printResult(cmd *cobra.Command, res any) {
	data, err := yaml.Marshal(res)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprintln(os.Stdout, string(data))
}

func init() {
	scoreCmd.Flags().StringP("format", "f", "console", "Output format (console, json, yaml)")
	tuiCmd.Flags().StringP("format", "f", "console", "Output format for the final report (console, json, yaml)")
	affordabilityCmd.Flags().String("target", "green", "Assessment status to maintain (green, yellow)")

	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(pensionCmd)
	rootCmd.AddCommand(financingCmd)
	rootCmd.AddCommand(riskCmd)
	rootCmd.AddCommand(affordabilityCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

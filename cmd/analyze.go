package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/arossel/planboard/config"
	"github.com/arossel/planboard/core/model"
	"github.com/arossel/planboard/core/normalize"
	"github.com/arossel/planboard/core/openings"
	"github.com/arossel/planboard/core/timeline"
	"github.com/arossel/planboard/pkg/export"
	"github.com/arossel/planboard/pkg/tabular"
)

var (
	analyzeSchedules string
	analyzeTickets   string
	analyzeCutoff    string
	analyzeFormat    string
	analyzeExport    string
	analyzeOut       string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "One-shot pipeline run over CSV exports",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeSchedules, "schedules", "", "schedule phases CSV file (required)")
	analyzeCmd.Flags().StringVar(&analyzeTickets, "tickets", "", "tickets CSV file")
	analyzeCmd.Flags().StringVar(&analyzeCutoff, "cutoff", "", "inclusive timeline end date")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "text", "output format: text, json or csv")
	analyzeCmd.Flags().StringVar(&analyzeExport, "export", "openings", "what to export: openings or timeline")
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "output file (default stdout)")
	if err := analyzeCmd.MarkFlagRequired("schedules"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := analyzeConfig()
	if err != nil {
		return err
	}

	var cutoff *time.Time
	if analyzeCutoff != "" {
		t, err := tabular.ParseDate(analyzeCutoff)
		if err != nil {
			return fmt.Errorf("cutoff: %w", err)
		}
		cutoff = &t
	}

	entries, err := readSchedules(analyzeSchedules, cutoff, cfg.Pipeline)
	if err != nil {
		return err
	}
	var tickets []model.Ticket
	if analyzeTickets != "" {
		tickets, err = readTickets(analyzeTickets)
		if err != nil {
			return err
		}
	}

	out := io.Writer(os.Stdout)
	if analyzeOut != "" {
		f, err := os.Create(analyzeOut)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	res := openings.Predict(entries, cfg.Openings)
	switch analyzeExport {
	case "openings":
		return writeOpenings(out, entries, res, cfg)
	case "timeline":
		m := timeline.Build(entries, tickets, nil, nil, cfg.Timeline)
		return writeTimeline(out, m.Rows())
	default:
		return fmt.Errorf("unknown export %q", analyzeExport)
	}
}

// analyzeConfig loads the config file when present and falls back to the
// built-in defaults, so analyze works without any setup.
func analyzeConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgPath); err != nil {
		return config.Default(), nil
	}
	return config.Load(cfgPath)
}

func readSchedules(path string, cutoff *time.Time, cfg normalize.Config) ([]model.ScheduleEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tbl, err := tabular.Read(f)
	if err != nil {
		return nil, err
	}
	return normalize.Schedules(tbl, cutoff, cfg)
}

func readTickets(path string) ([]model.Ticket, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tbl, err := tabular.Read(f)
	if err != nil {
		return nil, err
	}
	return normalize.Tickets(tbl)
}

func writeOpenings(w io.Writer, entries []model.ScheduleEntry, res openings.Result, cfg *config.Config) error {
	switch analyzeFormat {
	case "json":
		return export.WriteOpeningsJSON(w, res.Records)
	case "csv":
		return export.WriteOpeningsCSV(w, res.Records)
	case "text":
		if res.Empty() {
			_, err := fmt.Fprintln(w, "No eligible openings found.")
			return err
		}
		for i, rec := range res.Records {
			display := cfg.Timeline.Display(rec.Goal)
			if _, err := fmt.Fprintf(w, "%d. %s — Available: %s\n", i+1, display, rec.NextAvailable.Format("Jan 02, 2006")); err != nil {
				return err
			}
		}
		s := timeline.Summarize(entries)
		_, err := fmt.Fprintf(w, "\nSchedules: %d | Goals: %d | %s -> %s | %d days overall | Avg: %.0f days\n",
			s.Entries, s.Goals, s.EarliestStart.Format("2006-01-02"), s.LatestEnd.Format("2006-01-02"), s.SpanDays, s.MeanDurationDays)
		return err
	default:
		return fmt.Errorf("unknown format %q", analyzeFormat)
	}
}

func writeTimeline(w io.Writer, rows []timeline.Row) error {
	switch analyzeFormat {
	case "json":
		return export.WriteTimelineJSON(w, rows)
	case "csv", "text":
		return export.WriteTimelineCSV(w, rows)
	default:
		return fmt.Errorf("unknown format %q", analyzeFormat)
	}
}

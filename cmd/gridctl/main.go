package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/joshua-takyi/tessalate/internal/grid"
	"github.com/joshua-takyi/tessalate/internal/models"
	"github.com/joshua-takyi/tessalate/internal/services"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func main() {
	_ = godotenv.Load()

	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		slog.Error("gridctl failed", "error", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "gridctl",
		Usage:     "Inspect availability grids without running the API.",
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "warn", EnvVars: []string{"LOG_LEVEL"}},
		},
		Commands: []*cli.Command{
			slotsCommand(),
			heatmapCommand(),
		},
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"o"},
		Value:   formatTable,
		Usage:   "output format: table, json or yaml",
	}
}

func intervalFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "interval",
		Value:   grid.DefaultInterval,
		Usage:   "minutes between slots",
		EnvVars: []string{"SLOT_INTERVAL_MINUTES"},
	}
}

func slotsCommand() *cli.Command {
	return &cli.Command{
		Name:  "slots",
		Usage: "Print the slot keys for a set of dates and a daily time range.",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "dates", Required: true, Usage: "comma separated YYYY-MM-DD dates"},
			&cli.StringFlag{Name: "start", Required: true, Usage: "first time of day, HH:MM"},
			&cli.StringFlag{Name: "end", Required: true, Usage: "last time of day, HH:MM"},
			&cli.StringFlag{Name: "tz", Value: "UTC", Usage: "IANA time zone"},
			intervalFlag(),
			formatFlag(),
		},
		Action: func(c *cli.Context) error {
			logger := setupLogger(c.String("log-level"))
			g, err := grid.Build(c.StringSlice("dates"), c.String("start"), c.String("end"), c.String("tz"), c.Int("interval"), logger)
			if err != nil {
				return fmt.Errorf("failed to build grid: %w", err)
			}
			return render(c.App.Writer, c.String("format"), g, func(w io.Writer) {
				fmt.Fprintln(w, "DATE\tTIME\tKEY\t")
				for _, row := range g.Rows {
					for _, cell := range row.Cells {
						key := cell.Key
						if cell.Fallback {
							key += " (literal)"
						}
						fmt.Fprintf(w, "%s\t%s\t%s\t\n", cell.Date, cell.Time, key)
					}
				}
			})
		},
	}
}

func heatmapCommand() *cli.Command {
	return &cli.Command{
		Name:  "heatmap",
		Usage: "Aggregate an exported event JSON file into a heatmap.",
		Flags: []cli.Flag{
			&cli.PathFlag{Name: "file", Aliases: []string{"f"}, Required: true, Usage: "event JSON as returned by GET /api/events/:id"},
			intervalFlag(),
			formatFlag(),
		},
		Action: func(c *cli.Context) error {
			logger := setupLogger(c.String("log-level"))
			event, err := readEvent(c.Path("file"))
			if err != nil {
				return err
			}
			view, err := buildView(c.Context, event, c.Int("interval"), logger)
			if err != nil {
				return err
			}
			return render(c.App.Writer, c.String("format"), view, func(w io.Writer) {
				fmt.Fprintf(w, "%s\t%s\t%d participants\t\n", view.Title, view.TimeZone, len(view.Participants))
				fmt.Fprintln(w, "DATE\tTIME\tLEVEL\tCOUNT\tAVAILABLE\t")
				for _, row := range view.Rows {
					for _, cell := range row.Cells {
						fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t\n",
							cell.Date, cell.Time, levelBar(cell.HeatmapLevel), cell.AvailableCount, strings.Join(cell.AvailableNames, ", "))
					}
				}
				if view.IgnoredSlots > 0 {
					fmt.Fprintf(w, "ignored off-grid slots: %d\t\n", view.IgnoredSlots)
				}
			})
		},
	}
}

func readEvent(path string) (*models.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var event models.Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("failed to decode event from %s: %w", path, err)
	}
	if event.ID == "" {
		event.ID = "local"
	}
	return &event, nil
}

// buildView runs the exported event through the same service the API uses,
// backed by a throwaway in-memory store.
func buildView(ctx context.Context, event *models.Event, interval int, logger *slog.Logger) (*models.GridView, error) {
	repo := models.NewMemoryRepo()
	if err := repo.CreateEvent(ctx, event); err != nil {
		return nil, err
	}
	es := services.NewEventService(repo, logger, services.EventServiceOptions{Interval: interval})
	return es.GetGrid(ctx, event.ID)
}

func levelBar(level int) string {
	return strings.Repeat("#", level) + strings.Repeat(".", grid.MaxLevel-level)
}

func render(out io.Writer, format string, v any, table func(w io.Writer)) error {
	switch strings.ToLower(format) {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case formatTable, "":
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		table(w)
		return w.Flush()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func setupLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

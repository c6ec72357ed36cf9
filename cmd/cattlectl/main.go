// cattlectl: herramienta de línea de comandos sobre snapshots del rodeo y layouts locales.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"cattle-records/internal/adapters/snapshot"
	badgerstore "cattle-records/internal/adapters/storage/badger"
	mem "cattle-records/internal/adapters/storage/memory"
	"cattle-records/internal/domain/layout"
	"cattle-records/internal/domain/records"
	"cattle-records/internal/platform/logger"

	"github.com/urfave/cli/v2"
	"golang.org/x/text/language"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	// cada subcomando necesita su propia instancia de flag
	layoutFlags := func() []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{
				Name:     "db",
				Aliases:  []string{"d"},
				Usage:    "Path to BadgerDB layout directory",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "profile",
				Aliases: []string{"p"},
				Usage:   "Profile (user id) dueño del layout",
				Value:   "local",
			},
		}
	}

	return &cli.App{
		Name:  "cattlectl",
		Usage: "Search cattle snapshots and manage column layouts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "sample",
				Usage:  "Write a sample herd snapshot (YAML or JSON by extension)",
				Action: sampleCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output file", Required: true},
					&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Usage: "Number of records", Value: 50},
					&cli.Uint64Flag{Name: "seed", Usage: "Random seed", Value: 1},
				},
			},
			{
				Name:      "search",
				Usage:     "Search, filter and sort a snapshot file",
				ArgsUsage: "[query]",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "snapshot", Aliases: []string{"s"}, Usage: "Snapshot file", Required: true},
					&cli.StringFlag{Name: "health", Usage: "Exact health status"},
					&cli.StringFlag{Name: "breed", Usage: "Exact breed name"},
					&cli.StringFlag{Name: "active", Usage: "true / false"},
					&cli.IntFlag{Name: "location", Usage: "Location id"},
					&cli.StringFlag{Name: "sort", Usage: "Sort spec, e.g. age:asc,name:desc"},
					&cli.StringFlag{Name: "columns", Usage: "Comma separated column keys (default: layout default)"},
					&cli.StringFlag{Name: "locale", Usage: "Collation locale (BCP 47)", Value: "und"},
				},
			},
			{
				Name:  "layout",
				Usage: "Inspect or change a stored column layout",
				Subcommands: []*cli.Command{
					{
						Name:   "show",
						Usage:  "Print the layout",
						Action: layoutShowCommand,
						Flags:  layoutFlags(),
					},
					{
						Name:      "toggle",
						Usage:     "Toggle a column's visibility",
						ArgsUsage: "<key>",
						Action:    layoutToggleCommand,
						Flags:     layoutFlags(),
					},
					{
						Name:      "reorder",
						Usage:     "Swap the order of two columns",
						ArgsUsage: "<source-key> <target-key>",
						Action:    layoutReorderCommand,
						Flags:     layoutFlags(),
					},
					{
						Name:   "reset",
						Usage:  "Restore the default layout",
						Action: layoutResetCommand,
						Flags:  layoutFlags(),
					},
				},
			},
		},
	}
}

var log = logger.NewNop()

func setupLogger(c *cli.Context) error {
	log = logger.New(logger.Options{
		Level:  logger.ParseLevel(c.String("log-level")),
		Format: logger.FormatText,
		App:    "cattlectl",
	})
	return nil
}

func sampleCommand(c *cli.Context) error {
	n := c.Int("count")
	if n <= 0 {
		return fmt.Errorf("count must be positive")
	}
	doc := snapshot.NewDocument(mem.SampleTables(), mem.SampleHerd(n, time.Now(), c.Uint64("seed")))
	if err := snapshot.Write(c.String("out"), doc); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "wrote %d records to %s\n", n, c.String("out"))
	return nil
}

func searchCommand(c *cli.Context) error {
	locale, err := language.Parse(c.String("locale"))
	if err != nil {
		return fmt.Errorf("invalid locale: %w", err)
	}

	crit := records.Criteria{
		Search:       strings.Join(c.Args().Slice(), " "),
		HealthStatus: strings.TrimSpace(c.String("health")),
		Breed:        strings.TrimSpace(c.String("breed")),
	}
	if v := strings.TrimSpace(c.String("active")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("active must be true or false")
		}
		crit.Active = &b
	}
	if c.IsSet("location") {
		id := c.Int("location")
		crit.LocationID = &id
	}

	fs := snapshot.NewFileSource(c.String("snapshot"))
	svc := records.NewService(fs, fs,
		records.WithLogger(log.With(map[string]any{"module": "records"})),
		records.WithCollation(locale),
	)
	res, err := svc.Search(c.Context, records.SearchInput{
		Criteria: crit,
		Sort:     records.ParseSortSpec(c.String("sort")),
	})
	if err != nil {
		return err
	}

	keys := splitKeys(c.String("columns"))
	if len(keys) == 0 {
		keys = layout.Keys(layout.VisibleOrdered(layout.DefaultColumns()))
	}

	projected := res.Project(keys)
	rows := make([][]string, 0, len(projected))
	for _, row := range projected {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			cells = append(cells, cell.Value)
		}
		rows = append(rows, cells)
	}
	if err := renderTable(c.App.Writer, keys, rows); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%d of %d records (active %d, avg weight %.1f kg)\n",
		len(res.Records), res.Total, res.Stats.Active, res.Stats.AverageWeight)
	return nil
}

func splitKeys(s string) []string {
	var out []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// withLayout abre el store badger, corre fn y lo cierra.
func withLayout(c *cli.Context, fn func(svc *layout.Service, profile string) ([]layout.Column, error)) error {
	store, err := badgerstore.Open(c.String("db"), false, log.With(map[string]any{"module": "badger"}))
	if err != nil {
		return err
	}
	defer store.Close()

	svc := layout.NewService(store, layout.WithLogger(log.With(map[string]any{"module": "layout"})))
	cols, err := fn(svc, c.String("profile"))
	if err != nil {
		return err
	}
	return printLayout(c, cols)
}

func printLayout(c *cli.Context, cols []layout.Column) error {
	rows := make([][]string, 0, len(cols))
	for _, col := range cols {
		rows = append(rows, []string{strconv.Itoa(col.Order), col.Key, col.Label, strconv.FormatBool(col.Visible)})
	}
	return renderTable(c.App.Writer, []string{"ORDER", "KEY", "LABEL", "VISIBLE"}, rows)
}

func layoutShowCommand(c *cli.Context) error {
	return withLayout(c, func(svc *layout.Service, profile string) ([]layout.Column, error) {
		return svc.Columns(c.Context, profile)
	})
}

func layoutToggleCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: layout toggle <key>")
	}
	return withLayout(c, func(svc *layout.Service, profile string) ([]layout.Column, error) {
		return svc.Toggle(c.Context, profile, c.Args().First())
	})
}

func layoutReorderCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: layout reorder <source-key> <target-key>")
	}
	return withLayout(c, func(svc *layout.Service, profile string) ([]layout.Column, error) {
		return svc.Reorder(c.Context, profile, c.Args().Get(0), c.Args().Get(1))
	})
}

func layoutResetCommand(c *cli.Context) error {
	return withLayout(c, func(svc *layout.Service, profile string) ([]layout.Column, error) {
		return svc.Reset(c.Context, profile)
	})
}

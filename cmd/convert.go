package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/gnames/esdveg/internal/ioconvert"
	"github.com/gnames/esdveg/internal/iodb"
	"github.com/gnames/esdveg/pkg/db"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getConvertCmd returns the convert command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getConvertCmd() *cobra.Command {
	convertCmd := &cobra.Command{
		Use:   "convert VEG_FILE OUT_FILE",
		Short: "Convert vegetation strings to species codes",
		Long: `Convert vegetation strings of ecological sites to species codes.

This command:
  1. Reads site_id and veg_sci columns from a pipe-delimited or JSON file
  2. Loads the USDA PLANTS species table (local file or URL)
  3. Splits every vegetation string into strata and species
  4. Replaces known scientific names by accepted symbols
  5. Writes reassembled strings sorted by site_id

The format of OUT_FILE depends on its extension: '.csv' gives a
pipe-delimited table, '.json' or no extension gives JSON.

Only the first three strata (tree, shrub, grass) are kept in results.

Examples:
  esdveg convert veg.csv veg_new.csv
  esdveg convert veg.csv veg_new.json -p plants.txt --audit
  esdveg convert veg.csv veg_new.json -d debug.sqlite -e`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runConvert(cmd, args[0], args[1])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	fs := convertCmd.Flags()
	fs.StringP("plants", "p", "",
		"species table source, a file path or URL")
	fs.StringP("db", "d", "",
		"save intermediate tables to a SQLite file")
	fs.BoolP("audit", "a", false,
		"audit unmatched names and write <OUT_FILE>.audit.csv")
	fs.BoolP("export", "e", false,
		"export results to PostgreSQL")
	fs.BoolP("collapse", "c", false,
		"collapse empty strata, 'PIPO//BOGR2' becomes 'PIPO/BOGR2'")
	fs.IntP("jobs", "j", 0,
		"number of concurrent workers")

	return convertCmd
}

func runConvert(cmd *cobra.Command, vegPath, outPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg.Update(convertOpts(cmd))

	var op db.Operator
	if cfg.WithExport {
		op = iodb.NewPgxOperator()
		if err := op.Connect(ctx, &cfg.Database); err != nil {
			return err
		}
		defer op.Close()

		gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
			cfg.Database.User, cfg.Database.Host,
			cfg.Database.Port, cfg.Database.Database)
	}

	c := ioconvert.New(cfg, op, true)
	summary, err := c.Convert(ctx, vegPath, outPath)
	if err != nil {
		return err
	}

	gn.Info("Results are saved to <em>%s</em>", outPath)
	gn.Info("%s", ioconvert.Report(summary))
	return nil
}

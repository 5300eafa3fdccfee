package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/gnames/esdveg/internal/ioplants"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getPlantsCmd returns the plants command.
func getPlantsCmd() *cobra.Command {
	plantsCmd := &cobra.Command{
		Use:   "plants",
		Short: "Fetch and check the species table",
		Long: `Fetch the USDA PLANTS species table and report its content.

A URL source is downloaded to ~/.cache/esdveg/plants.txt. The command
prints the number of rows, distinct scientific names and names that
have more than one accepted symbol.

Examples:
  esdveg plants
  esdveg plants -p ~/data/plants.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runPlants(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	plantsCmd.Flags().StringP("plants", "p", "",
		"species table source, a file path or URL")
	return plantsCmd
}

func runPlants(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg.Update(plantsSourceOpt(cmd))

	f := ioplants.NewFetcher(cfg, true)
	path, err := f.Fetch(ctx, cfg.Plants.Source)
	if err != nil {
		return err
	}

	idx, tbl, err := ioplants.LoadIndex(path)
	if err != nil {
		return err
	}

	gn.Info("Species table: <em>%s</em>", path)
	gn.Info("Rows: %s", humanize.Comma(int64(tbl.Rows)))
	gn.Info("Scientific names: %s", humanize.Comma(int64(idx.Len())))
	gn.Info("Name/symbol pairs: %s", humanize.Comma(int64(len(idx.Pairs()))))

	amb := idx.Ambiguities()
	if len(amb) == 0 {
		return nil
	}
	gn.Warn("Names with more than one symbol: %d", len(amb))
	for _, v := range amb {
		gn.Message("  %s: %v -> <em>%s</em>", v.Name, v.Codes, v.Chosen)
	}
	return nil
}

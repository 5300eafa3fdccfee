package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gnames/esdveg/internal/iodb"
	"github.com/gnames/esdveg/internal/ioschema"
	"github.com/gnames/esdveg/pkg/schema"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getCreateCmd returns the create command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getCreateCmd() *cobra.Command {
	var forceCreate bool

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create database schema for exported results",
		Long: `Create the PostgreSQL table that receives converted vegetation
strings ('convert --export').

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Checks for an existing export table and prompts for confirmation
  3. Creates the table using GORM AutoMigrate
  4. Sets "C" collation on site identifiers

Use --force to skip confirmation and drop the existing table.

Examples:
  esdveg create
  esdveg create --force
  esdveg create -f`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCreate(cmd, args, forceCreate)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	createCmd.Flags().BoolVarP(&forceCreate, "force", "f",
		false, "drop existing table without confirmation")

	return createCmd
}

func runCreate(
	_ *cobra.Command,
	_ []string,
	force bool,
) error {
	ctx := context.Background()

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	table := schema.VegSite{}.TableName()
	exists, err := op.TableExists(ctx, table)
	if err != nil {
		return err
	}

	if exists {
		if !force {
			gn.Warn("\nWarning: table <em>%s</em> already exists.", table)
			gn.Warn("Creating schema will drop the table and its data.")
			fmt.Print("\nDo you want to continue? (yes/no): ")

			reader := bufio.NewReader(os.Stdin)
			response, err := reader.ReadString('\n')
			if err != nil {
				gn.Warn("Failed to read user input")
				return err
			}

			response = strings.TrimSpace(strings.ToLower(response))
			if response != "yes" && response != "y" {
				gn.Info("Aborted. No changes made.")
				return nil
			}
		}

		gn.Info("Dropping table <em>%s</em>...", table)
		if err = op.DropTable(ctx, table); err != nil {
			return err
		}
	}

	sm := ioschema.NewManager(op)
	gn.Info("Creating schema using GORM AutoMigrate...")
	if err = sm.Create(ctx); err != nil {
		return err
	}

	gn.Info("Database schema creation complete!")
	gn.Info("Run 'esdveg convert VEG_FILE OUT_FILE --export' to fill it")
	return nil
}

package cmd

import (
	"fmt"
	"os"

	app "github.com/gnames/esdveg/pkg"
	"github.com/gnames/esdveg/pkg/config"
	"github.com/spf13/cobra"
)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", app.Version, app.Build)
		os.Exit(0)
	}
}

// plantsSourceOpt returns an option for the species table source if
// the flag was set.
func plantsSourceOpt(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("plants") {
		return nil
	}
	s, _ := cmd.Flags().GetString("plants")
	return []config.Option{config.OptPlantsSource(s)}
}

// convertOpts collects options of the flags of the convert command that
// were set explicitly.
func convertOpts(cmd *cobra.Command) []config.Option {
	res := plantsSourceOpt(cmd)
	fs := cmd.Flags()

	if fs.Changed("db") {
		s, _ := fs.GetString("db")
		res = append(res, config.OptDebugDB(s))
	}
	if fs.Changed("audit") {
		b, _ := fs.GetBool("audit")
		res = append(res, config.OptWithAudit(b))
	}
	if fs.Changed("export") {
		b, _ := fs.GetBool("export")
		res = append(res, config.OptWithExport(b))
	}
	if fs.Changed("collapse") {
		b, _ := fs.GetBool("collapse")
		res = append(res, config.OptCollapseEmpty(b))
	}
	if fs.Changed("jobs") {
		i, _ := fs.GetInt("jobs")
		res = append(res, config.OptJobsNumber(i))
	}
	return res
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/jobboard/internal/jobs"
)

func (a *app) positionsCmd() *cobra.Command {
	var (
		params jobs.SearchParams
		target string
	)

	cmd := &cobra.Command{
		Use:   "positions",
		Short: "Search job positions",
		Example: `  jobboard positions --description "ios developer" --full-time
  jobboard positions --location Berlin -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := a.formatter()
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("target") && a.cfg.Target != "" {
				target = a.cfg.Target
			}
			if params.Page < 0 {
				return fmt.Errorf("invalid page %d", params.Page)
			}

			positions, err := a.jobsAPI(a.newClient(), target).Positions(cmd.Context(), params)
			if err != nil {
				return err
			}

			fmt.Fprint(a.stdout, formatter.FormatPositions(positions))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&params.Description, "description", "", "Search term, e.g. a language or job title")
	flags.StringVar(&params.Location, "location", "", "City, state, zip code or country")
	flags.BoolVar(&params.FullTime, "full-time", false, "Only full time positions")
	flags.IntVar(&params.Page, "page", 0, "Result page, starting at 0")
	flags.StringVar(&target, "target", jobs.DefaultTarget, "Jobs API base URL")
	return cmd
}

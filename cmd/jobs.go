package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List job profiles from the catalog",
	Run: func(cmd *cobra.Command, _ []string) {
		logger := newLogger()

		config, err := getConfig()
		if err != nil {
			logger.Fatal("getting a config", zap.Error(err))
		}

		catalog, err := loadCatalog(config, logger)
		if err != nil {
			logger.Fatal("loading job catalog", zap.Error(err))
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tCOMPETENCIES")
		for _, id := range catalog.IDs() {
			job, err := catalog.Get(id)
			if err != nil {
				logger.Fatal("reading job profile", zap.Error(err))
			}
			fmt.Fprintf(w, "%s\t%s\t%d\n", job.JobID, job.Title, len(job.Competencies))
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)
}

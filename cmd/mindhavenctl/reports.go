package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mindhaven/mindhaven/internal/app/store/gateway"
	"github.com/mindhaven/mindhaven/internal/app/store/queries/reportqueries"
)

func init() {
	reportsCmd := &cobra.Command{Use: "reports", Short: "Aggregation reports"}

	reportsCmd.AddCommand(&cobra.Command{
		Use:   "meditations",
		Short: "Catalog breakdown by category and type",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, cleanup, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			rows, err := reportqueries.CatalogBreakdown(cmd.Context(), gw.Database())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CATEGORY\tTYPE\tCOUNT\tAVG MINUTES")
			for _, row := range rows {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%.1f\n", row.Category, row.Type, row.Count, row.AvgDurationMins)
			}
			return tw.Flush()
		},
	})

	reportsCmd.AddCommand(&cobra.Command{
		Use:   "moods",
		Short: "Mood entry distribution by level and feeling",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, cleanup, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			rows, err := reportqueries.MoodDistribution(cmd.Context(), gw.Database())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "LEVEL\tFEELING\tCOUNT")
			for _, row := range rows {
				fmt.Fprintf(tw, "%d\t%s\t%d\n", row.Level, row.Feeling, row.Count)
			}
			return tw.Flush()
		},
	})

	reportsCmd.AddCommand(&cobra.Command{
		Use:   "sessions",
		Short: "Most recent completed sessions with catalog detail",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, cleanup, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			rows, err := reportqueries.RecentSessions(cmd.Context(), gw.Database())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "COMPLETED\tUSER\tTITLE\tCATEGORY\tPLANNED")
			for _, row := range rows {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d min\n",
					row.CompletedAt.Format("2006-01-02 15:04"), row.UserName, row.Title, row.Category, row.PlannedMinutes)
			}
			return tw.Flush()
		},
	})

	reportsCmd.AddCommand(&cobra.Command{
		Use:   "active-users",
		Short: "Users ranked by completed sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, cleanup, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			rows, err := reportqueries.MostActiveUsers(cmd.Context(), gw.Database())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tEMAIL\tSESSIONS\tMOODS\tASSESSMENTS")
			for _, row := range rows {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\n",
					row.Name, row.Email, row.MeditationCount, row.MoodEntryCount, row.AssessmentCount)
			}
			return tw.Flush()
		},
	})

	rootCmd.AddCommand(reportsCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Collection counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, cleanup, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			users, err := gw.CountDocuments(cmd.Context(), gateway.UsersCollection)
			if err != nil {
				return err
			}
			meditations, err := gw.CountDocuments(cmd.Context(), gateway.MeditationsCollection)
			if err != nil {
				return err
			}
			fmt.Printf("users: %d\nmeditations: %d\n", users, meditations)
			return nil
		},
	})
}

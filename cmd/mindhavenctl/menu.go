package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mindhaven/mindhaven/internal/app/store/gateway"
	meditationstore "github.com/mindhaven/mindhaven/internal/app/store/meditations"
	"github.com/mindhaven/mindhaven/internal/app/store/queries/reportqueries"
	userstore "github.com/mindhaven/mindhaven/internal/app/store/users"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "menu",
		Short: "Interactive console menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, cleanup, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			return runMenu(cmd.Context(), gw)
		},
	})
}

func runMenu(ctx context.Context, gw *gateway.Gateway) error {
	for {
		fmt.Println()
		fmt.Println("=== mindhaven ===")
		fmt.Println("1. List users")
		fmt.Println("2. List meditations")
		fmt.Println("3. Delete a meditation")
		fmt.Println("4. Reports")
		fmt.Println("5. Stats")
		fmt.Println("0. Exit")

		choice, err := prompt("> ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = menuListUsers(ctx, gw)
		case "2":
			err = menuListMeditations(ctx, gw)
		case "3":
			err = menuDeleteMeditation(ctx, gw)
		case "4":
			err = menuReports(ctx, gw)
		case "5":
			err = menuStats(ctx, gw)
		case "0", "q", "exit":
			return nil
		default:
			fmt.Println("unknown option")
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
	}
}

func menuListUsers(ctx context.Context, gw *gateway.Gateway) error {
	summaries, err := userstore.New(gw).ListSummary(ctx, 50)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.ID.Hex(), s.Name, s.Email)
	}
	return tw.Flush()
}

func menuListMeditations(ctx context.Context, gw *gateway.Gateway) error {
	summaries, err := meditationstore.New(gw).ListSummary(ctx, 0)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tMINUTES")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", s.ID.Hex(), s.Title, s.Category, s.DurationMinutes)
	}
	return tw.Flush()
}

func menuDeleteMeditation(ctx context.Context, gw *gateway.Gateway) error {
	id, err := prompt("meditation id: ")
	if err != nil {
		return err
	}
	store := meditationstore.New(gw)
	med, err := store.GetByHexID(ctx, id)
	if err != nil {
		return err
	}

	refs, err := store.CountReferencingUsers(ctx, med.ID)
	if err != nil {
		return err
	}

	policy := meditationstore.DeletePolicyKeepRefs
	if refs > 0 {
		policy, err = resolveDeletePolicy("", med.Title, refs)
		if err != nil {
			return err
		}
		if policy == meditationstore.DeletePolicyCancel {
			fmt.Println("cancelled")
			return nil
		}
	}

	if err := store.Delete(ctx, med.ID, policy); err != nil {
		return err
	}
	fmt.Println("deleted", med.ID.Hex())
	return nil
}

func menuReports(ctx context.Context, gw *gateway.Gateway) error {
	fmt.Println("1. Catalog breakdown")
	fmt.Println("2. Mood distribution")
	fmt.Println("3. Recent sessions")
	fmt.Println("4. Most active users")

	choice, err := prompt("> ")
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	switch choice {
	case "1":
		rows, err := reportqueries.CatalogBreakdown(ctx, gw.Database())
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, "CATEGORY\tTYPE\tCOUNT\tAVG MINUTES")
		for _, row := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%.1f\n", row.Category, row.Type, row.Count, row.AvgDurationMins)
		}
	case "2":
		rows, err := reportqueries.MoodDistribution(ctx, gw.Database())
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, "LEVEL\tFEELING\tCOUNT")
		for _, row := range rows {
			fmt.Fprintf(tw, "%d\t%s\t%d\n", row.Level, row.Feeling, row.Count)
		}
	case "3":
		rows, err := reportqueries.RecentSessions(ctx, gw.Database())
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, "COMPLETED\tUSER\tTITLE")
		for _, row := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", row.CompletedAt.Format("2006-01-02"), row.UserName, row.Title)
		}
	case "4":
		rows, err := reportqueries.MostActiveUsers(ctx, gw.Database())
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, "NAME\tSESSIONS\tMOODS")
		for _, row := range rows {
			fmt.Fprintf(tw, "%s\t%d\t%d\n", row.Name, row.MeditationCount, row.MoodEntryCount)
		}
	default:
		fmt.Println("unknown option")
	}
	return nil
}

func menuStats(ctx context.Context, gw *gateway.Gateway) error {
	users, err := gw.CountDocuments(ctx, gateway.UsersCollection)
	if err != nil {
		return err
	}
	meditations, err := gw.CountDocuments(ctx, gateway.MeditationsCollection)
	if err != nil {
		return err
	}
	fmt.Printf("users: %d\nmeditations: %d\n", users, meditations)
	return nil
}

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	meditationstore "github.com/mindhaven/mindhaven/internal/app/store/meditations"
	"github.com/mindhaven/mindhaven/internal/domain/models"
)

func init() {
	medCmd := &cobra.Command{Use: "meditations", Short: "Meditation catalog operations"}

	var limit int64
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries by title",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, cleanup, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			summaries, err := meditationstore.New(gw).ListSummary(cmd.Context(), limit)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tTYPE\tMINUTES")
			for _, s := range summaries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n",
					s.ID.Hex(), s.Title, s.Category, s.Type, s.DurationMinutes)
			}
			return tw.Flush()
		},
	}
	listCmd.Flags().Int64Var(&limit, "limit", 0, "Maximum entries to list (0 for all)")
	medCmd.AddCommand(listCmd)

	var (
		title, description, audioURL, medType, category, coverURL string
		minutes                                                   int
		force                                                     bool
	)
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a catalog entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, cleanup, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			store := meditationstore.New(gw)

			// Duplicate titles need an explicit go-ahead.
			if !force {
				exists, err := store.TitleExists(cmd.Context(), title)
				if err != nil {
					return err
				}
				if exists {
					ok, err := confirm(fmt.Sprintf("A meditation titled %q already exists. Add anyway?", title))
					if err != nil {
						return err
					}
					if !ok {
						fmt.Println("cancelled")
						return nil
					}
				}
			}

			created, err := store.Create(cmd.Context(), models.Meditation{
				Title:           title,
				Description:     description,
				DurationMinutes: minutes,
				AudioURL:        audioURL,
				Type:            medType,
				Category:        category,
				CoverImageURL:   coverURL,
			})
			if err != nil {
				return err
			}
			fmt.Printf("created %s\n", created.ID.Hex())
			return nil
		},
	}
	addCmd.Flags().StringVar(&title, "title", "", "Title (required)")
	addCmd.Flags().StringVar(&description, "description", "", "Description")
	addCmd.Flags().IntVar(&minutes, "minutes", 0, "Duration in minutes (required)")
	addCmd.Flags().StringVar(&audioURL, "audio-url", "", "Audio file URL")
	addCmd.Flags().StringVar(&medType, "type", "", "Type (breathing, mindfulness, ...)")
	addCmd.Flags().StringVar(&category, "category", "", "Category (beginner, intermediate, advanced)")
	addCmd.Flags().StringVar(&coverURL, "cover-url", "", "Cover image URL")
	addCmd.Flags().BoolVar(&force, "force", false, "Skip the duplicate-title check")
	_ = addCmd.MarkFlagRequired("title")
	_ = addCmd.MarkFlagRequired("minutes")
	medCmd.AddCommand(addCmd)

	showCmd := &cobra.Command{
		Use:   "show MEDITATION_ID",
		Short: "Show one catalog entry as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, cleanup, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			med, err := meditationstore.New(gw).GetByHexID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(med, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	medCmd.AddCommand(showCmd)

	var policyFlag string
	deleteCmd := &cobra.Command{
		Use:   "delete MEDITATION_ID",
		Short: "Delete a catalog entry",
		Long: `Delete a catalog entry. When user history still references the
meditation, choose what happens to those references:

  keep     delete the catalog entry, leave history references dangling
  cascade  delete the catalog entry and strip it from all user histories

Without --policy the command reports the reference count and asks.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, cleanup, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			store := meditationstore.New(gw)
			med, err := store.GetByHexID(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			refs, err := store.CountReferencingUsers(cmd.Context(), med.ID)
			if err != nil {
				return err
			}

			policy := meditationstore.DeletePolicyKeepRefs
			if refs > 0 {
				policy, err = resolveDeletePolicy(policyFlag, med.Title, refs)
				if err != nil {
					return err
				}
				if policy == meditationstore.DeletePolicyCancel {
					fmt.Println("cancelled")
					return nil
				}
			}

			if err := store.Delete(cmd.Context(), med.ID, policy); err != nil {
				return err
			}
			fmt.Printf("deleted %s\n", med.ID.Hex())
			return nil
		},
	}
	deleteCmd.Flags().StringVar(&policyFlag, "policy", "", "Reference handling: keep or cascade (prompts when omitted)")
	medCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(medCmd)
}

// resolveDeletePolicy turns the --policy flag, or an interactive
// choice, into a DeletePolicy. Cancel is the default on any answer
// other than an explicit keep or cascade.
func resolveDeletePolicy(flag, title string, refs int64) (meditationstore.DeletePolicy, error) {
	switch flag {
	case "keep":
		return meditationstore.DeletePolicyKeepRefs, nil
	case "cascade":
		return meditationstore.DeletePolicyCascade, nil
	case "":
	default:
		return meditationstore.DeletePolicyCancel, fmt.Errorf("unknown policy %q (use keep or cascade)", flag)
	}

	fmt.Printf("%d user(s) have %q in their history.\n", refs, title)
	answer, err := prompt("[k]eep references, [c]ascade removal, or [a]bort? ")
	if err != nil {
		return meditationstore.DeletePolicyCancel, err
	}
	switch answer {
	case "k", "keep":
		return meditationstore.DeletePolicyKeepRefs, nil
	case "c", "cascade":
		return meditationstore.DeletePolicyCascade, nil
	}
	return meditationstore.DeletePolicyCancel, nil
}

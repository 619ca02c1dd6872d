package main

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/jaswdr/faker"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/mindhaven/mindhaven/internal/app/store/gateway"
	meditationstore "github.com/mindhaven/mindhaven/internal/app/store/meditations"
	userstore "github.com/mindhaven/mindhaven/internal/app/store/users"
	"github.com/mindhaven/mindhaven/internal/domain/models"
)

var seedFeelings = []string{"happy", "calm", "content", "tired", "anxious", "sad", "stressed"}

var seedCatalog = []models.Meditation{
	{Title: "Morning Breath Awareness", DurationMinutes: 10, Type: "breathing", Category: models.CategoryBeginner},
	{Title: "Five Minute Reset", DurationMinutes: 5, Type: "breathing", Category: models.CategoryBeginner},
	{Title: "Body Scan for Sleep", DurationMinutes: 20, Type: "body-scan", Category: models.CategoryIntermediate},
	{Title: "Loving Kindness Practice", DurationMinutes: 15, Type: "loving-kindness", Category: models.CategoryIntermediate},
	{Title: "Open Awareness Sit", DurationMinutes: 30, Type: "mindfulness", Category: models.CategoryAdvanced},
	{Title: "Mountain Visualization", DurationMinutes: 25, Type: "visualization", Category: models.CategoryAdvanced},
	{Title: "Deep Sleep Journey", DurationMinutes: 45, Type: "sleep", Category: models.CategoryBeginner},
}

func init() {
	var (
		userCount int
		seedValue int64
	)
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with generated sample data",
		Long: `Populate the database with the demo catalog plus generated users,
each carrying random mood entries, meditation sessions, and assessment
results. Intended for development databases; duplicate emails from a
previous run are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, cleanup, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			return runSeed(cmd.Context(), gw, userCount, seedValue)
		},
	}
	seedCmd.Flags().IntVar(&userCount, "users", 20, "Number of users to generate")
	seedCmd.Flags().Int64Var(&seedValue, "seed", 0, "Random seed (0 uses the current time)")
	rootCmd.AddCommand(seedCmd)

	var yes bool
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every document from the users and meditations collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				ok, err := confirm(fmt.Sprintf("Erase ALL data in database %q?", databaseFlag))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("cancelled")
					return nil
				}
			}

			gw, cleanup, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			for _, coll := range []string{gateway.UsersCollection, gateway.MeditationsCollection} {
				n, err := gw.Reset(cmd.Context(), coll)
				if err != nil {
					return err
				}
				fmt.Printf("%s: removed %d\n", coll, n)
			}
			return nil
		},
	}
	resetCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runSeed(ctx context.Context, gw *gateway.Gateway, userCount int, seedValue int64) error {
	if seedValue == 0 {
		seedValue = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seedValue))
	fake := faker.NewWithSeed(rand.NewSource(seedValue))

	medStore := meditationstore.New(gw)
	userStore := userstore.New(gw)

	// Catalog first so user histories have something to reference.
	var medIDs []models.Meditation
	for _, m := range seedCatalog {
		exists, err := medStore.TitleExists(ctx, m.Title)
		if err != nil {
			return err
		}
		if exists {
			existing, err := medStore.GetByTitle(ctx, m.Title)
			if err != nil {
				return err
			}
			medIDs = append(medIDs, *existing)
			continue
		}
		created, err := medStore.Create(ctx, m)
		if err != nil {
			return err
		}
		medIDs = append(medIDs, created)
	}
	fmt.Printf("catalog: %d entries\n", len(medIDs))

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return err
	}

	created := 0
	for i := 0; i < userCount; i++ {
		person := fake.Person()
		first, last := person.FirstName(), person.LastName()
		email := fmt.Sprintf("%s.%s%d@example.com",
			strings.ToLower(first), strings.ToLower(last), rng.Intn(10000))

		user, err := userStore.Create(ctx, models.User{
			Name:         first + " " + last,
			Email:        email,
			PasswordHash: string(hash),
		})
		if err == userstore.ErrDuplicateEmail {
			continue
		}
		if err != nil {
			return err
		}
		created++

		now := time.Now().UTC()
		for d := 0; d < rng.Intn(14); d++ {
			entry := models.MoodEntry{
				Level:      1 + rng.Intn(5),
				Feeling:    seedFeelings[rng.Intn(len(seedFeelings))],
				RecordedAt: now.AddDate(0, 0, -d),
			}
			if err := userStore.AppendMoodEntry(ctx, user.ID, entry); err != nil {
				return err
			}
		}
		for s := 0; s < rng.Intn(8); s++ {
			med := medIDs[rng.Intn(len(medIDs))]
			actual := med.DurationMinutes - rng.Intn(5)
			session := models.MeditationSession{
				MeditationID:  med.ID,
				CompletedAt:   now.Add(-time.Duration(rng.Intn(30*24)) * time.Hour),
				ActualMinutes: &actual,
			}
			if err := userStore.AppendMeditationSession(ctx, user.ID, session); err != nil {
				return err
			}
		}
		if rng.Intn(2) == 0 {
			kinds := []string{
				models.AssessmentAnxiety, models.AssessmentDepression,
				models.AssessmentStress, models.AssessmentBurnout,
			}
			score := rng.Intn(21)
			result := models.AssessmentResult{
				Kind:    kinds[rng.Intn(len(kinds))],
				Score:   score,
				TakenAt: now.AddDate(0, 0, -rng.Intn(60)),
			}
			if err := userStore.AppendAssessmentResult(ctx, user.ID, result); err != nil {
				return err
			}
		}
	}

	fmt.Printf("users: created %d\n", created)
	return nil
}

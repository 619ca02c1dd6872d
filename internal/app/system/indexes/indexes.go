// internal/app/system/indexes/indexes.go

// Package indexes creates the indexes the stores depend on. EnsureAll is
// called from bootstrap at startup; every ensure* function is idempotent
// and errors are aggregated so a single bad index does not hide the rest.
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureAll builds the index set for every collection.
//
// The unique email index and the sparse unique national-id index are what
// make the stores' duplicate checks race-free: the pre-insert lookup is a
// courtesy, the index is the guarantee.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureMeditations(ctx, db); err != nil {
		problems = append(problems, "meditations: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return createIndexSet(ctx, db.Collection("users"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_email_unique").SetUnique(true),
		},
		{
			// Sparse: users without a national id are not in the index,
			// so only present values must be unique.
			Keys:    bson.D{{Key: "national_id", Value: 1}},
			Options: options.Index().SetName("idx_national_id_unique").SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "registered_at", Value: -1}},
			Options: options.Index().SetName("idx_registered_at"),
		},
		{
			// Supports the reference check that guards meditation deletion.
			Keys:    bson.D{{Key: "meditation_history.meditation_id", Value: 1}},
			Options: options.Index().SetName("idx_history_meditation_id"),
		},
	})
}

func ensureMeditations(ctx context.Context, db *mongo.Database) error {
	return createIndexSet(ctx, db.Collection("meditations"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "title", Value: 1}},
			Options: options.Index().SetName("idx_title"),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("idx_category"),
		},
		{
			Keys:    bson.D{{Key: "type", Value: 1}},
			Options: options.Index().SetName("idx_type"),
		},
		{
			Keys: bson.D{
				{Key: "category", Value: 1},
				{Key: "duration_minutes", Value: 1},
			},
			Options: options.Index().SetName("idx_category_duration"),
		},
	})
}

func createIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string
	for _, m := range models {
		name := ""
		if m.Options != nil && m.Options.Name != nil {
			name = *m.Options.Name
		}
		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			// An index with the same keys but different options already
			// exists. Log and keep going rather than failing startup;
			// reconciling options is an operator decision.
			if isOptionsConflict(err) {
				zap.L().Warn("index exists with conflicting options",
					zap.String("collection", coll.Name()),
					zap.String("index", name),
					zap.Error(err))
				continue
			}
			errs = append(errs, name+": "+err.Error())
			continue
		}
		zap.L().Info("ensured index",
			zap.String("collection", coll.Name()),
			zap.String("index", name))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func isOptionsConflict(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "IndexOptionsConflict") || strings.Contains(s, "IndexKeySpecsConflict")
}

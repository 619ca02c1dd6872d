// Package reportqueries provides the read-only aggregations behind the
// reporting endpoints and the admin report menus. Every function runs a
// single pipeline and decodes into a flat row type; nothing here
// mutates data.
package reportqueries

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mindhaven/mindhaven/internal/app/store/gateway"
)

// CatalogBreakdownRow is one (category, type) bucket of the catalog.
type CatalogBreakdownRow struct {
	Category        string  `json:"category"`
	Type            string  `json:"type"`
	Count           int64   `json:"count"`
	AvgDurationMins float64 `json:"avg_duration_minutes"`
}

// CatalogBreakdown groups the meditation catalog by (category, type)
// with a count and average duration per bucket, ordered by category
// ascending then count descending.
func CatalogBreakdown(ctx context.Context, db *mongo.Database) ([]CatalogBreakdownRow, error) {
	pipeline := []bson.M{
		{"$group": bson.M{
			"_id": bson.M{
				"category": "$category",
				"type":     "$type",
			},
			"count":        bson.M{"$sum": 1},
			"avg_duration": bson.M{"$avg": "$duration_minutes"},
		}},
		{"$sort": bson.D{
			{Key: "_id.category", Value: 1},
			{Key: "count", Value: -1},
		}},
	}

	cur, err := db.Collection(gateway.MeditationsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	rows := []CatalogBreakdownRow{}
	for cur.Next(ctx) {
		var row struct {
			ID struct {
				Category string `bson:"category"`
				Type     string `bson:"type"`
			} `bson:"_id"`
			Count       int64   `bson:"count"`
			AvgDuration float64 `bson:"avg_duration"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		rows = append(rows, CatalogBreakdownRow{
			Category:        row.ID.Category,
			Type:            row.ID.Type,
			Count:           row.Count,
			AvgDurationMins: row.AvgDuration,
		})
	}
	return rows, cur.Err()
}

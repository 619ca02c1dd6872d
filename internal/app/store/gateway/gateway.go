// internal/app/store/gateway/gateway.go

// Package gateway owns the shared handle to the document store. It is
// constructed once at startup in bootstrap.ConnectDB and passed by
// reference to the repositories and the reporting queries; nothing in the
// application reaches the database except through it.
//
// The underlying driver establishes connections lazily, so constructing a
// Gateway does not block on the network. A connectivity failure during a
// call is returned to the caller as-is; there is no retry layer here.
package gateway

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names used by the application.
const (
	UsersCollection       = "users"
	MeditationsCollection = "meditations"
)

// Gateway wraps the Mongo client and database for one deployment.
type Gateway struct {
	client *mongo.Client
	db     *mongo.Database
}

// New wraps an already-connected client and its application database.
func New(client *mongo.Client, db *mongo.Database) *Gateway {
	return &Gateway{client: client, db: db}
}

// Collection returns a handle to the named collection.
func (g *Gateway) Collection(name string) *mongo.Collection {
	return g.db.Collection(name)
}

// Database returns the underlying database handle. Reporting queries use
// this for aggregations that span collections.
func (g *Gateway) Database() *mongo.Database {
	return g.db
}

// Client returns the underlying client, for health checks and shutdown.
func (g *Gateway) Client() *mongo.Client {
	return g.client
}

// CountDocuments counts all documents in the named collection.
func (g *Gateway) CountDocuments(ctx context.Context, name string) (int64, error) {
	return g.db.Collection(name).CountDocuments(ctx, bson.M{})
}

// CollectionNames lists the collections present in the database.
func (g *Gateway) CollectionNames(ctx context.Context) ([]string, error) {
	return g.db.ListCollectionNames(ctx, bson.M{})
}

// Reset deletes every document in the named collection. Administrative
// use only; the CLI gates it behind an explicit confirmation.
func (g *Gateway) Reset(ctx context.Context, name string) (int64, error) {
	res, err := g.db.Collection(name).DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Ping verifies connectivity to the store. Used by the health endpoint.
func (g *Gateway) Ping(ctx context.Context) error {
	return g.client.Ping(ctx, readpref.Primary())
}

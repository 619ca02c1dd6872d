// internal/testutil/db.go

// Package testutil provides the shared plumbing for store and handler
// tests: a throwaway per-test database and fixture builders.
package testutil

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/mindhaven/mindhaven/internal/app/system/indexes"
)

// MONGO_TEST_URI points tests at a disposable MongoDB instance. When it
// is unset, tests that need a live store are skipped rather than failed,
// so the pure-logic tests still run everywhere.
const uriEnv = "MONGO_TEST_URI"

var dbCounter atomic.Int64

// SetupTestDB connects to the test MongoDB instance and returns a fresh,
// uniquely named database with the application's indexes in place. The
// database is dropped and the client disconnected when the test ends.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv(uriEnv)
	if uri == "" {
		t.Skipf("%s not set; skipping test that needs a live MongoDB", uriEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("failed to connect to test MongoDB: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		t.Fatalf("failed to ping test MongoDB: %v", err)
	}

	name := fmt.Sprintf("mindhaven_test_%d_%d", time.Now().UnixNano(), dbCounter.Add(1))
	db := client.Database(name)

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("failed to create indexes: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	return db
}

// TestContext returns a context with the default deadline store tests use.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

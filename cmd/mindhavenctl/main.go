// mindhavenctl is the operator CLI. It connects straight to MongoDB
// with the same stores the service uses, so everything it does stays
// consistent with the API's validation and deletion rules.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/mindhaven/mindhaven/internal/app/store/gateway"
	"github.com/mindhaven/mindhaven/internal/app/system/indexes"
)

var (
	uriFlag      string
	databaseFlag string

	rootCmd = &cobra.Command{
		Use:   "mindhavenctl",
		Short: "Operator CLI for the mindhaven database",
	}
)

// connect opens a Mongo connection, ensures indexes, and returns the
// gateway plus a cleanup func.
func connect(ctx context.Context) (*gateway.Gateway, func(), error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uriFlag))
	if err != nil {
		return nil, nil, fmt.Errorf("connect: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping: %w", err)
	}

	db := client.Database(databaseFlag)
	if err := indexes.EnsureAll(connectCtx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ensure indexes: %w", err)
	}

	cleanup := func() { _ = client.Disconnect(context.Background()) }
	return gateway.New(client, db), cleanup, nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&uriFlag, "mongo-uri", "mongodb://localhost:27017", "MongoDB connection URI")
	rootCmd.PersistentFlags().StringVar(&databaseFlag, "database", "mindhaven", "Database name")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

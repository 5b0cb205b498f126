package main

import (
	"context"
	"log"
	"os"
	"os/signal"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

// go run ./cmd/shortlink signup --name "Jane Doe" --email jane@example.com --password Secret12 --confirm Secret12 --accept-terms
// go run ./cmd/shortlink shorten https://example.com/a/b
// go run ./cmd/shortlink links
// API_URL=http://localhost:8000 SESSION_STORE_TYPE=2 SESSION_DB_DSN=session.db go run ./cmd/shortlink status

package main

import (
	"context"

	"github.com/sieke13/bookshelf/internal/client/cli"
	"github.com/sieke13/bookshelf/internal/client/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	app := cli.NewApp(cfg)
	app.Run(ctx)
}

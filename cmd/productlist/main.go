package main

import (
	"context"
	"time"

	"github.com/niksmo/productlist/config"
	"github.com/niksmo/productlist/internal/app"
	"github.com/niksmo/productlist/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext(context.Background())
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	productList := app.New(sigCtx, cfg)

	productList.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	productList.Close(ctx)
}

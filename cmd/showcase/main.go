package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/dverbeek/promptbooth/internal/config"
	"github.com/dverbeek/promptbooth/internal/inject"
	"github.com/dverbeek/promptbooth/internal/log"
	"github.com/dverbeek/promptbooth/internal/showcase"
	"github.com/samber/do"
)

func main() {
	ctx := log.NewContext(context.Background(), log.NewLambda(os.Stderr))
	logger := log.FromContextOrDiscard(ctx)

	cfg, err := config.Load(os.Getenv("PROMPTBOOTH_CONFIG"))
	if err != nil {
		logger.Error("loading config failed", "error", err)
		os.Exit(1)
	}

	injector := inject.Setup(ctx, cfg)
	handler := do.MustInvoke[*showcase.Handler](injector)
	lambda.StartWithOptions(handler.Handle, lambda.WithContext(ctx), lambda.WithEnableSIGTERM(func() {
		_ = injector.Shutdown()
	}))
}

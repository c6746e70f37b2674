package main

import (
	"context"
	"log/slog"
	"os"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/go-presignup-gate/internal/app"
	"github.com/go-presignup-gate/internal/config"
	"github.com/go-presignup-gate/internal/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	// Only present when running the binary locally; Lambda has no .env.
	_ = godotenv.Load()

	cfg := config.Load()

	// CloudWatch gets JSON unless APP_ENV was set explicitly.
	env := cfg.AppEnv
	if os.Getenv("APP_ENV") == "" && os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		env = "lambda"
	}
	log := logger.New(env, cfg.LogLevel)
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	hook, err := app.NewPreSignUpHook(context.Background(), cfg, log)
	if err != nil {
		log.Error("could not build pre-signup hook", "err", err)
		os.Exit(1)
	}

	awslambda.Start(hook.Handle)
}

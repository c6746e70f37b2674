package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-presignup-gate/internal/application/signup"
	"github.com/go-presignup-gate/internal/config"
	snsinfra "github.com/go-presignup-gate/internal/infrastructure/sns"
	"github.com/go-presignup-gate/internal/transport/lambda"
)

// NewPreSignUpHook wires the signup gate, the optional SNS decision
// publisher and the Cognito adapter from cfg.
func NewPreSignUpHook(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*lambda.Handler, error) {
	gate := signup.NewService(signup.ServiceDeps{
		AllowedSuffixes: cfg.AllowedEmailSuffixes,
		Logger:          logger,
	})

	deps := lambda.HandlerDeps{
		Gate:    gate,
		AppName: cfg.AppName,
		Logger:  logger,
	}
	if cfg.SignupEventsTopicARN != "" {
		client, err := snsinfra.NewClient(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("sns client: %w", err)
		}
		deps.Publisher = snsinfra.NewPublisher(client, cfg.SignupEventsTopicARN)
		logger.Info("signup decision publishing enabled", "topic_arn", cfg.SignupEventsTopicARN)
	}

	return lambda.NewHandler(deps), nil
}

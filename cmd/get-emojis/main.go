// Command get-emojis is the lambda function proxying emoji-api.com lookups
// behind an api gateway v2 http integration.
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"github.com/prognoshealth/emojiproxy/config"
	"github.com/prognoshealth/emojiproxy/lambdautils"
	"github.com/prognoshealth/emojiproxy/lookup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed loading configuration")
	}

	logger, err := lambdautils.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.WithError(err).Fatal("failed building logger")
	}

	if err := cfg.ResolveAccessKey(context.Background()); err != nil {
		logger.WithError(err).Fatal("failed resolving emoji api access key")
	}

	router := lookup.NewRouter(lookup.NewHandler(cfg.Client(), logger))
	lambda.Start(router.Route)
}

// Command emoji-lookup runs a single invocation of the emoji lookup function
// from the command line and prints the response.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"

	"github.com/prognoshealth/emojiproxy/config"
	"github.com/prognoshealth/emojiproxy/emoji"
	"github.com/prognoshealth/emojiproxy/lambdautils"
	"github.com/prognoshealth/emojiproxy/lookup"
)

type args struct {
	Query     string `arg:"positional" help:"search text, every emoji is listed when omitted"`
	List      bool   `arg:"-l,--list" help:"print one emoji per line instead of the json response"`
	AccessKey string `arg:"-k,--access-key" help:"emoji-api.com access key, overrides EMOJI_API"`
}

func (args) Description() string {
	return "\nlook up emojis through the emoji lookup function\n"
}

func main() {
	var a args
	arg.MustParse(&a)

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed loading configuration")
	}

	if a.AccessKey != "" {
		cfg.AccessKey = a.AccessKey
	}

	logger, err := lambdautils.NewLogger(cfg.LogLevel, "text")
	if err != nil {
		logrus.WithError(err).Fatal("failed building logger")
	}

	ctx := context.Background()
	if err := cfg.ResolveAccessKey(ctx); err != nil {
		logger.WithError(err).Fatal("failed resolving emoji api access key")
	}

	request := events.APIGatewayV2HTTPRequest{
		RawPath: "/emojis",
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{Method: "GET"},
		},
	}

	if a.Query != "" {
		request.QueryStringParameters = map[string]string{lookup.QueryParameter: a.Query}
	}

	router := lookup.NewRouter(lookup.NewHandler(cfg.Client(), logger))
	response, err := router.Route(ctx, request)
	if err != nil {
		logger.WithError(err).Fatal("lookup failed")
	}

	if err := printResponse(response, a.List); err != nil {
		logger.WithError(err).Fatal("failed printing response")
	}

	if response.StatusCode != 200 {
		os.Exit(1)
	}
}

func printResponse(response events.APIGatewayProxyResponse, list bool) error {
	if !list || response.StatusCode != 200 {
		fmt.Println(response.StatusCode, response.Body)
		return nil
	}

	result, err := emoji.ParseResult([]byte(response.Body))
	if err != nil {
		return err
	}

	emojis, err := result.Emojis()
	if err != nil {
		return err
	}

	for _, e := range emojis {
		fmt.Printf("%s\t%s\t%s\n", e.Character, e.CodePoint, e.UnicodeName)
	}

	return nil
}

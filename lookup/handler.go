// Package lookup is the emoji lookup function: it forwards the optional
// "query" query-string parameter to the emoji api and relays the outcome.
//
//	200  upstream payload, compacted
//	404  {"error": <upstream error>} or {"error":"No results found"}
//	500  {"error":"Internal Server Error"}
//
// Nothing but the query parameter is read from the request.
package lookup

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"

	"github.com/prognoshealth/emojiproxy/emoji"
	"github.com/prognoshealth/emojiproxy/lambdautils"
	"github.com/prognoshealth/emojiproxy/proxy"
)

// QueryParameter is the query-string parameter holding the search text.
const QueryParameter = "query"

// InternalServerError is the only message a caller sees for a failed lookup.
const InternalServerError = "Internal Server Error"

// Client is the part of emoji.Client the handler uses.
type Client interface {
	URL(query string) string
	Lookup(ctx context.Context, query string) (*emoji.Result, error)
}

// Handler answers lookup requests with a fixed client. It holds no state
// between invocations.
type Handler struct {
	Client Client
	Logger *logrus.Logger
}

// NewHandler returns a handler for client. A nil logger falls back to the
// logrus standard logger.
func NewHandler(client Client, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Handler{Client: client, Logger: logger}
}

// Handle performs one lookup for the request's query parameter.
func (h *Handler) Handle(rctx *proxy.RouteContext) (events.APIGatewayProxyResponse, error) {
	ctx := rctx.Context
	if ctx == nil {
		ctx = context.Background()
	}

	query := rctx.Query(QueryParameter)
	log := lambdautils.Logger(ctx, h.Logger).WithField("url", emoji.RedactURL(h.Client.URL(query)))

	log.Info("looking up emojis")

	result, err := h.Client.Lookup(ctx, query)
	if err != nil {
		log.WithError(err).Error("emoji api lookup failed")
		return proxy.JSONError(http.StatusInternalServerError, InternalServerError), nil
	}

	log.WithField("payload", string(result.Payload)).Debug("emoji api responded")

	if !result.Found() {
		log.WithField("upstream_error", string(result.Error)).Info("no emojis found")
		return proxy.JSON(http.StatusNotFound, result.ErrorBody()), nil
	}

	log.WithField("bytes", len(result.Payload)).Info("emojis found")
	return proxy.JSON(http.StatusOK, result.Payload), nil
}

// NewRouter returns a router sending every request, whatever its method or
// path, to h. Routing errors are answered with the generic 500 body.
func NewRouter(h *Handler) *proxy.Router {
	router := &proxy.Router{}
	router.Any(".*", h.Handle)

	router.AddErrorHandler(func(ctx context.Context, request events.APIGatewayV2HTTPRequest, err error) (events.APIGatewayProxyResponse, error) {
		lambdautils.Logger(ctx, h.Logger).WithError(err).Error("failed routing request")
		return proxy.JSONError(http.StatusInternalServerError, InternalServerError), nil
	})

	return router
}

package proxy

import (
	"context"
	"encoding/base64"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// RouteFunc is the signature of Router.Route and of a lambda handler serving
// api gateway v2 http events.
type RouteFunc func(context.Context, events.APIGatewayV2HTTPRequest) (events.APIGatewayProxyResponse, error)

// LocalHandler exposes route as a plain http.Handler so a function can be run
// outside of lambda. Every method and path is forwarded. Failures after the
// response has started are reported to logger.
func LocalHandler(route RouteFunc, logger logrus.FieldLogger) http.Handler {
	router := chi.NewRouter()

	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		request, err := RequestFromHTTP(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		response, err := route(r.Context(), request)
		if err != nil {
			// lambda reports handler errors as a 502 from api gateway
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		if err := WriteHTTP(w, response); err != nil {
			logger.WithError(err).WithField("path", r.URL.Path).Error("failed writing response")
		}
	})

	return router
}

// RequestFromHTTP converts r into the event api gateway v2 would deliver for
// it. Repeated query parameters and headers are joined with commas and header
// names are lower cased, as api gateway does.
func RequestFromHTTP(r *http.Request) (events.APIGatewayV2HTTPRequest, error) {
	var body []byte
	if r.Body != nil {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return events.APIGatewayV2HTTPRequest{}, errors.Wrap(err, "failed reading request body")
		}
		body = b
	}

	request := events.APIGatewayV2HTTPRequest{
		Version:        "2.0",
		RouteKey:       "$default",
		RawPath:        r.URL.Path,
		RawQueryString: r.URL.RawQuery,
		Headers:        map[string]string{},
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			RouteKey:   "$default",
			Stage:      "$default",
			RequestID:  strconv.FormatInt(time.Now().UnixNano(), 36),
			DomainName: r.Host,
			TimeEpoch:  time.Now().UnixMilli(),
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method:    r.Method,
				Path:      r.URL.Path,
				Protocol:  r.Proto,
				SourceIP:  sourceIP(r.RemoteAddr),
				UserAgent: r.UserAgent(),
			},
		},
	}

	if query := r.URL.Query(); len(query) > 0 {
		request.QueryStringParameters = make(map[string]string, len(query))
		for k, v := range query {
			request.QueryStringParameters[k] = strings.Join(v, ",")
		}
	}

	for k, v := range r.Header {
		request.Headers[strings.ToLower(k)] = strings.Join(v, ",")
	}

	if utf8.Valid(body) {
		request.Body = string(body)
	} else {
		request.Body = base64.StdEncoding.EncodeToString(body)
		request.IsBase64Encoded = true
	}

	return request, nil
}

// WriteHTTP writes response to w. A body that cannot be decoded is answered
// with a 502 before anything else is written; any later error means the
// response is already on its way and is only returned.
func WriteHTTP(w http.ResponseWriter, response events.APIGatewayProxyResponse) error {
	body := []byte(response.Body)
	if response.IsBase64Encoded {
		b, err := base64.StdEncoding.DecodeString(response.Body)
		if err != nil {
			http.Error(w, "invalid response body", http.StatusBadGateway)
			return errors.Wrap(err, "failed decoding response body")
		}
		body = b
	}

	for k, v := range response.Headers {
		w.Header().Set(k, v)
	}

	for k, vs := range response.MultiValueHeaders {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}

	status := response.StatusCode
	if status == 0 {
		status = http.StatusOK
	}

	w.WriteHeader(status)
	_, err := w.Write(body)
	return err
}

func sourceIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}

	return host
}

package proxy

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/require"
)

func testHandler(ctx *RouteContext) (events.APIGatewayProxyResponse, error) {
	return events.APIGatewayProxyResponse{StatusCode: 200}, nil
}

func testRequest(method HttpMethod, path string) events.APIGatewayV2HTTPRequest {
	return events.APIGatewayV2HTTPRequest{
		RawPath: path,
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method: method.String(),
			},
		},
		Headers: map[string]string{},
	}
}

// fixtureRequest loads testdata/apigatewayv2-<name>.json.
func fixtureRequest(t *testing.T, name string) events.APIGatewayV2HTTPRequest {
	t.Helper()

	content, err := os.ReadFile(filepath.Join("testdata", "apigatewayv2-"+name+".json"))
	require.NoError(t, err)

	var request events.APIGatewayV2HTTPRequest
	require.NoError(t, json.Unmarshal(content, &request))

	return request
}

package proxy

import (
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
)

// ContentTypeJSON is the content type of every response built here.
const ContentTypeJSON = "application/json"

// JSON returns a response with the given status and an already encoded json
// body.
func JSON(status int, body []byte) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": ContentTypeJSON},
		Body:       string(body),
	}
}

// JSONError returns a response whose body is {"error": message}.
func JSONError(status int, message string) events.APIGatewayProxyResponse {
	// a string always marshals
	body, _ := json.Marshal(struct {
		Error string `json:"error"`
	}{message})

	return JSON(status, body)
}

// Package proxy routes aws api gateway v2 (http) integration events to the
// handlers of the emoji lookup function. Requests arrive as
// events.APIGatewayV2HTTPRequest and leave as events.APIGatewayProxyResponse.
//
// The router is deliberately small: regex path matching, a method filter, a
// catch all and an error hook.
package proxy

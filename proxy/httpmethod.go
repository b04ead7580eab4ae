package proxy

import (
	"fmt"
	"strings"
)

// HttpMethod is an enum of the standard Http Methods.
type HttpMethod int

const (
	GET HttpMethod = iota
	HEAD
	POST
	PUT
	DELETE
	CONNECT
	OPTIONS
	TRACE
	PATCH

	// ANY matches every method.
	ANY
)

var methodNames = map[HttpMethod]string{
	GET:     "GET",
	HEAD:    "HEAD",
	POST:    "POST",
	PUT:     "PUT",
	DELETE:  "DELETE",
	CONNECT: "CONNECT",
	OPTIONS: "OPTIONS",
	TRACE:   "TRACE",
	PATCH:   "PATCH",
	ANY:     "ANY",
}

func (m HttpMethod) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}

	return fmt.Sprintf("HttpMethod(%d)", int(m))
}

// Matches reports whether the method accepts the raw request method.
func (m HttpMethod) Matches(method string) bool {
	return m == ANY || strings.EqualFold(m.String(), method)
}

// ParseHttpMethod returns the HttpMethod for the given name. Names are case
// insensitive.
func ParseHttpMethod(name string) (HttpMethod, error) {
	for m, n := range methodNames {
		if strings.EqualFold(n, name) {
			return m, nil
		}
	}

	return 0, fmt.Errorf("unknown http method '%s'", name)
}

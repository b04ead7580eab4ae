// Package emoji is a client for the emoji-api.com lookup endpoint.
//
// A lookup makes exactly one GET request and never retries. Its outcome is one
// of three things: a Result that Found() emojis, a Result carrying the
// upstream's logical error (or nothing at all), or a non-nil error when the
// request could not be made or the body was not json.
package emoji

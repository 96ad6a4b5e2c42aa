// Package common contains shared constants and sentinel errors used across
// client and server components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer credential
// on authenticated requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix prefixes the access token inside the Authorization header.
const BearerPrefix = "Bearer "

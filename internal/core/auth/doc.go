// Package auth is the authentication and authorization core of the account
// service.
//
// Request flow:
//
//	bearer header → Gate.Authenticate → RequireRole / RequireOwnership → handler
//
// Tokens are stateless signed JWTs; the Gate pairs every successful token
// verification with a live lifecycle lookup so a deactivated account is
// rejected even while its token is still cryptographically valid. Nothing in
// this package holds per-request or per-session state.
package auth

// Package panel is the HTTP client for the streaming-control backend.
//
// Each exported Client method maps to exactly one backend endpoint. Requests
// are UTF-8 JSON, carry an X-Request-ID that doubles as the log correlation
// id, and optionally a bearer token (static or HS256-signed). Failures fall
// into two classes: transport errors tagged with services.ErrUnavailable and
// non-2xx answers surfaced as *StatusError carrying the server's text.
package panel

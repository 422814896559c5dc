// Package services defines small utilities shared by the API client, the
// session store, and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp request IDs, action names, and backend
//     endpoints so log lines from one user action can be correlated.
//   - Error markers plus the Wrap helper that classify failures as transport
//     (unavailable), server rejections, configuration, or session-state
//     problems.
//
// Use these helpers when adding new actions so error reporting and
// observability stay uniform across every endpoint.
package services

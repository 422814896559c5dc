// Package session persists the client-side state of one control-panel edit
// session: the scene option list, the stream/record indicators, the Twitch
// tag set, the last category search and the category options picked from it.
//
// State lives in a small SQLite database so consecutive CLI invocations see
// the same session. Mutating commands hold the file lock returned by
// AcquireLock while they run.
package session

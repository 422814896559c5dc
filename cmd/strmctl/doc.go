// Package main hosts the strmctl CLI entrypoint and command graph.
//
// Each subcommand is one control-panel action: it builds a request from flag
// values with internal/forms, sends it through internal/panel, and applies
// the answer to the persisted edit session in internal/session. Keep command
// files thin; request shaping and state rules live in the internal packages.
package main

// Package forms turns raw form values into backend request DTOs.
//
// Every function here is pure: callers pass the exact field values the user
// typed and receive a ready-to-send panel request. Unparseable input is never
// rejected. Numbers fall back to 0, colours to opaque black, and recording IDs
// to -1, so request construction can be tested without any terminal or
// network.
package forms

// Package config loads, normalizes, and validates strmctl configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files (or YAML when the file ends in .yaml/.yml), and
// honours environment fallbacks such as STRMCTL_SERVER and STRMCTL_TOKEN. The
// Config type centralizes the backend address, credentials, session state
// location, and logging knobs the CLI needs.
//
// Always obtain settings through this package so downstream code receives
// sanitized URLs, expanded paths, and clear validation errors.
package config

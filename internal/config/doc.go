// Package config loads, normalizes, and validates bookdup configuration
// data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI needs: catalog location, the duplicate comparison rule, the
// normalizer word lists, and result presentation. Match settings are
// translated into a validated rule at load time so illegal combinations
// fail before any search runs.
package config

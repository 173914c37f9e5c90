// Package config loads, normalizes, and validates greenlight configuration.
//
// Configuration lives in a TOML file. Load resolves the file location,
// applies defaults for missing values, expands ~ in paths, and validates the
// result so the rest of the tool can trust every field.
package config

// Package config defines the format-agnostic model of a configuration file
// and the Loader interface that format-specific packages implement.
//
// Every field of Model is optional; a nil field means "not set in the file"
// so that the caller can layer file values between built-in defaults and
// command-line flags. Concrete loaders live in hcl_adapter and yaml_adapter.
package config

// Package config defines the simulator's YAML configuration: listener
// ports, logging, and endpoint definitions loaded at startup from inline
// entries, file references, or glob patterns.
package config

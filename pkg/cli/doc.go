// Package cli provides the command-line interface for atsmock.
//
// Commands:
//   - serve: start the mock simulator with the admin API
//   - import: convert an OpenAPI spec into endpoint definitions
//   - render: render a response template with sample data
//   - validate: check a response template for errors
//   - version: show the atsmock version
package cli

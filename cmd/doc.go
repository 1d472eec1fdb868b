// Package cmd implements the scopeboard command line interface.
//
// The root command wires configuration from flags, a config file, and
// SCOPEBOARD_* environment variables. Subcommands inspect and mutate
// collection scope directly or start the MCP server.
package cmd

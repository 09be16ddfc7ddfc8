// Package app wires one simulation run together: it owns the logger and the
// output writer, detects the host, loads the table configuration, runs the
// table, serves the optional monitor and renders the report, decoupled from
// any specific entrypoint like a CLI.
package app

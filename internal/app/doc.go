// Package app contains the core application logic. It defines the App, its
// configuration and the run lifecycle: load the setup table, resolve the
// templates, fetch the magnet record, assemble and write the outputs. It is
// decoupled from any specific entrypoint like a CLI.
package app

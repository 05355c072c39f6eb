// Package cli provides the interactive gophnotes command-line client.
//
// It wires configuration and the HTTP API client into a REPL. Typical flow:
// register or log in, then list, add, edit, delete or export notes.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli

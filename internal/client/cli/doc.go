// Package cli implements the interactive Stockroom terminal client.
//
// It wires the remote REST client, the in-memory session store and the
// sync coordinator into a small REPL. All user interaction goes through
// the helpers in input.go so the prompts stay testable.
package cli

// Package cli provides the interactive gophauth command-line client.
//
// It wires configuration, the local session store, the HTTP API client and
// an interactive REPL. Typical flow: restore a remembered session, start a
// background connectivity watcher, and execute user commands.
//
// Key features:
//   - Register / Login, greeting the user by display name
//   - Me: show the identity resolved from the current token
//   - Logout
//   - Health: probe the server
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli

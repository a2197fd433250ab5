// Package client contains client-side building blocks for gophauth.
//
// # Overview
//
// The package provides:
//  1. An API contract (see the Client interface) for the gophauth backend:
//     Register, Login, Me and Health.
//  2. A concrete HTTP/JSON implementation (see HTTPClient) that sends the
//     bearer token on authenticated calls and maps responses to errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the CLI's
//     session store, an SQLite file migrated with embedded goose migrations.
//
// # Error Handling
//
// Transport failures match ErrUnavailable. Non-2xx responses are returned as
// *APIError carrying the server's message; they match ErrUnauthorized (401),
// ErrRejected (other 4xx) or ErrUnavailable (5xx) with errors.Is.
//
// All operations accept context.Context and honor cancellation/timeouts.
package client

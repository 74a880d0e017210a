// Package remote contains the client-side transport for the Stockroom
// backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     Register/Login/RefreshSession, filtered record reads, inserts,
//     full-field updates, quantity-delta RPC, and deletes.
//  2. A concrete HTTP implementation (see RESTClient) that speaks the
//     backend's PostgREST-style REST surface, injects the project API key
//     and the bearer access token on every call, transparently refreshes
//     expired tokens once, and maps HTTP outcomes to sentinel errors.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable (transport failure or 5xx gateway states)
// and ErrUnauthorized (401/403). Other rejections surface as *APIError with
// the HTTP status and the backend's message.
//
// Concurrency & Contexts
//
// RESTClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation; no timeouts are enforced here
// beyond the transport defaults.
package remote

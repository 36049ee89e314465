// Package source provides DecisionSource implementations for querying
// external collaborators during slot negotiation.
//
// Three implementations are provided:
//
//   - Static: scripted replies, useful for tests and deterministic runs
//   - NATS: request-reply over a per-station NATS subject
//   - OpenAI: chat-completions HTTP client with per-station temperature
//
// All sources return free-form text; the coordinator parses replies
// tolerantly and treats unusable output as "no proposal".
package source

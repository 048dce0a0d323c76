// Package core provides the foundational domain types and interfaces used by
// AnagoChat. It defines the core abstractions for:
//
//   - Messages (immutable, ordered transcript entries)
//   - AssistantEvents (closed tagged union of normalized assistant replies)
//   - Conversations (server-owned identity, title, status and persisted turns)
//   - Product references and the read-only catalog lookup they are enriched from
//   - Collaborator interfaces for cart mutation and navigation
//
// The package intentionally keeps implementation concerns (normalization,
// dispatch, transport adapters) out of scope, exposing small interfaces to
// enable custom backends and extensions.
package core

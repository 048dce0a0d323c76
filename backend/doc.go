// Package backend defines the remote assistant collaborator consumed by the
// dispatcher: sending a user turn and loading persisted conversation history.
// The production implementation lives in backend/httpapi; backend/openai and
// backend/anthropic provide development backends that speak the assistant
// event protocol directly to a model SDK so the chat core can run without the
// storefront API.
package backend

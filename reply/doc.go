// Package reply normalizes raw assistant replies into the closed
// core.AssistantEvent union. A raw reply is either a structured value already
// shaped like an event payload or a string containing a JSON-encoded
// equivalent; Normalize accepts both and never fails observably. Malformed
// input degrades to a plain message event carrying the original text, so
// every downstream component can pattern-match the result exhaustively.
package reply

// Package dispatch orchestrates the chat core. The Dispatcher owns the
// conversation identity, status and transcript, and is the single entry point
// invoked per user message: it appends the user turn optimistically, sends it
// to the remote backend, normalizes the reply, enriches product references,
// executes do-event side effects and appends exactly one assistant message.
// Loading a persisted conversation replays it through the transcript codec.
package dispatch

// Package transcript replays persisted conversation turns into the same typed
// message representation used live. Assistant turns are stored doubly encoded
// (a JSON event payload inside the transport envelope); the codec applies the
// reply normalizer per turn so a single malformed turn degrades to a plain
// message instead of failing the whole conversation load. Order is preserved
// one-to-one with the input: it is chronological.
package transcript

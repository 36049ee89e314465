package source

import "errors"

// Sentinel errors returned by decision sources. Use errors.Is to match.
var (
	// ErrNoReply indicates a static source has exhausted its scripted
	// replies for the station.
	ErrNoReply = errors.New("no scripted reply for station")

	// ErrEmptyCompletion indicates the chat-completions API returned a
	// response with no choices.
	ErrEmptyCompletion = errors.New("completion response contained no choices")
)

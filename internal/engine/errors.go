package engine

import errorsmod "cosmossdk.io/errors"

// Codespace for engine errors.
const Codespace = "engine"

// engine sentinel errors.
var (
	ErrMalformedInput    = errorsmod.Register(Codespace, 1, "malformed input")
	ErrIterationOverflow = errorsmod.Register(Codespace, 2, "iteration overflow")
	ErrMalformedWords    = errorsmod.Register(Codespace, 3, "malformed commitment words")
	ErrUnknownWordOrder  = errorsmod.Register(Codespace, 4, "unknown word order")
	ErrDigestSize        = errorsmod.Register(Codespace, 5, "digest size mismatch")
)

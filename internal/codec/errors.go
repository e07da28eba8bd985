package codec

import errorsmod "cosmossdk.io/errors"

// Codespace for codec errors.
const Codespace = "codec"

var (
	ErrInvalidSecret = errorsmod.Register(Codespace, 1, "invalid secret")
	ErrInvalidTx     = errorsmod.Register(Codespace, 2, "invalid tx")
)

package registry

import errorsmod "cosmossdk.io/errors"

// Codespace for registry errors.
const Codespace = "registry"

var (
	ErrUnknownTxType = errorsmod.Register(Codespace, 1, "unknown tx type")
	ErrNotFound      = errorsmod.Register(Codespace, 2, "commitment not found")
	ErrOverflow      = errorsmod.Register(Codespace, 3, "counter overflow")
	ErrUnknownQuery  = errorsmod.Register(Codespace, 4, "unknown query path")
)

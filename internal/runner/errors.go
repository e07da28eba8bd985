package runner

import errorsmod "cosmossdk.io/errors"

// Codespace for runner errors.
const Codespace = "runner"

var (
	ErrIterationBudget = errorsmod.Register(Codespace, 1, "iteration budget exceeded")
	ErrDeadline        = errorsmod.Register(Codespace, 2, "commitment deadline exceeded")
	ErrMismatch        = errorsmod.Register(Codespace, 3, "commitment mismatch")
)

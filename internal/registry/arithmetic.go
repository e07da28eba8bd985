package registry

import errorsmod "cosmossdk.io/errors"

func addUint64Checked(a, b uint64, field string) (uint64, error) {
	if a > ^uint64(0)-b {
		return 0, errorsmod.Wrapf(ErrOverflow, "%s overflows uint64", field)
	}
	return a + b, nil
}

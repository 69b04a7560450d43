package amm

import (
	"cosmossdk.io/errors"
)

// Codespace for pool engine sentinel errors.
const codespace = "amm"

// Pool engine sentinel errors
var (
	ErrInvalidAsset          = errors.Register(codespace, 1, "asset is not part of this pool")
	ErrIdenticalAssets       = errors.Register(codespace, 2, "cannot swap identical assets")
	ErrZeroAmount            = errors.Register(codespace, 3, "amount cannot be zero")
	ErrInsufficientOutput    = errors.Register(codespace, 4, "swap output truncates to zero")
	ErrInsufficientLiquidity = errors.Register(codespace, 5, "insufficient liquidity")
	ErrTransferFailed        = errors.Register(codespace, 6, "asset transfer failed")
	ErrInsufficientShares    = errors.Register(codespace, 7, "insufficient pool shares")
	ErrPoolExists            = errors.Register(codespace, 8, "pool already exists")
	ErrPoolNotFound          = errors.Register(codespace, 9, "pool not found")
	ErrNilAsset              = errors.Register(codespace, 10, "pool asset cannot be nil")
)

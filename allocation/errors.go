package allocation

import "errors"

var (
	ErrCallNotFound        = errors.New("capital call not found")
	ErrStructureNotFound   = errors.New("structure not found")
	ErrEmptyRoster         = errors.New("structure has no investor records")
	ErrDuplicateAllocation = errors.New("allocations already exist for this call")
	ErrInvalidFeeConfig    = errors.New("invalid fee configuration")
)

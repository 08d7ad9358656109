package keeper

import (
	"fmt"
	"math"
)

func addInt64AndU64Checked(base int64, delta uint64, field string) (int64, error) {
	if delta > math.MaxInt64 {
		return 0, fmt.Errorf("%s overflows int64", field)
	}
	if base > math.MaxInt64-int64(delta) {
		return 0, fmt.Errorf("%s overflows int64", field)
	}
	return base + int64(delta), nil
}

// elapsedBlocks is the number of blocks between origin and height.
func elapsedBlocks(height, origin int64) (uint64, error) {
	if height < origin {
		return 0, fmt.Errorf("height %d is before origin block %d", height, origin)
	}
	return uint64(height - origin), nil
}

// windowPassed reports whether strictly more than window blocks have elapsed
// since origin. It is evaluated only when a refund is requested.
func windowPassed(height, origin int64, window uint64) (bool, uint64, error) {
	elapsed, err := elapsedBlocks(height, origin)
	if err != nil {
		return false, 0, err
	}
	return elapsed > window, elapsed, nil
}

package tracker

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/splitledger/splitledger/internal/allocate"
)

// ParseAmount validates raw user input and rounds it to step.
func ParseAmount(raw string, step int64) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrInputEmpty
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInputNotInteger, s)
	}

	return checkRounded(v, step)
}

func checkRounded(v, step int64) (int64, error) {
	rounded := allocate.RoundToStep(v, step)
	if rounded <= 0 {
		return 0, fmt.Errorf("%w: %d rounds to %d", ErrInputNonPositive, v, rounded)
	}
	return rounded, nil
}

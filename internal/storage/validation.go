package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/caderno/internal/common"
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("context cannot be nil: %w", common.ErrInvalidInput)
	}
	return nil
}

func validateString(value, name string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty: %w", name, common.ErrInvalidInput)
	}
	return nil
}

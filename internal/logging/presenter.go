// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"

	apperrors "petway/cli/internal/errors"
)

// PresentError formats an error for user display with masking. Typed
// failures show their user message instead of the full chain.
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", context, Mask(apperrors.UserMessage(err)))
}

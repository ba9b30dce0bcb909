// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package funcname

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxLength is the longest accepted function name in bytes.
const MaxLength = 64

var validNameRegex = regexp.MustCompile(`^[A-Z][A-Z0-9_.]*$`)

// ValidateName validates that a function name starts with an uppercase
// letter and only contains uppercase letters, digits, underscores and dots.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("function name cannot be empty")
	}

	if len(name) > MaxLength {
		return fmt.Errorf("function name exceeds maximum length of %d bytes", MaxLength)
	}

	if name != strings.ToUpper(name) {
		return fmt.Errorf("function name must be uppercase: %q", name)
	}

	if !validNameRegex.MatchString(name) {
		return fmt.Errorf(
			"function name must start with a letter and only contain uppercase letters, digits, underscores and dots: %q",
			name)
	}

	if strings.HasSuffix(name, ".") {
		return fmt.Errorf("function name cannot end with a dot: %q", name)
	}

	return nil
}

package kernel

import (
	"fmt"
	"strings"

	"restaurant/internal/pkg/errs"
)

// Department is a preparation station (kitchen, bar, bakery, ...) that owns a
// subset of menu items. The set of departments is owned by the menu catalog,
// so Department is an open value object rather than a closed enum.
type Department struct {
	code string
}

const maxDepartmentCodeLength = 32

// NewDepartment normalizes the code to upper case and validates it.
//
//	bar, _ := kernel.NewDepartment("bar") // bar.String() == "BAR"
func NewDepartment(code string) (Department, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return Department{}, errs.NewValueIsRequiredError("department")
	}
	if len(normalized) > maxDepartmentCodeLength {
		return Department{}, errs.NewValueIsInvalidErrorWithCause(
			"department",
			fmt.Errorf("%q is longer than %d characters", normalized, maxDepartmentCodeLength),
		)
	}
	for _, r := range normalized {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '_' && r != '-' {
			return Department{}, errs.NewValueIsInvalidErrorWithCause(
				"department",
				fmt.Errorf("%q contains unsupported character %q", normalized, r),
			)
		}
	}
	return Department{code: normalized}, nil
}

// MustDepartment is NewDepartment for constants known to be valid. It panics otherwise.
func MustDepartment(code string) Department {
	d, err := NewDepartment(code)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Department) String() string {
	return d.code
}

func (d Department) IsEqual(other Department) bool {
	return d.code == other.code
}

// Validate rejects the zero value.
func (d Department) Validate() error {
	if d.code == "" {
		return errs.NewValueIsRequiredError("department")
	}
	return nil
}

// Package menu describes menu catalog entries as seen by order placement and
// the kitchen: the department preparing an item, its price and preparation time.
package menu

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrItemIsUnavailable is returned when an order references an item that is not on sale.
var ErrItemIsUnavailable = errors.New("menu item is unavailable")

// Item is a read-only catalog entry.
type Item struct {
	id         kernel.UUID
	name       string
	department kernel.Department
	price      decimal.Decimal
	prepTime   time.Duration
	available  bool
}

func NewItem(
	id kernel.UUID,
	name string,
	department kernel.Department,
	price decimal.Decimal,
	prepTime time.Duration,
	available bool,
) (Item, error) {
	var errList []error
	errList = append(errList, id.Validate(), department.Validate())
	name = strings.TrimSpace(name)
	if name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	if price.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price)))
	}
	if prepTime < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("prepTime", fmt.Errorf("%s is negative", prepTime)))
	}
	if err := errors.Join(errList...); err != nil {
		return Item{}, err
	}

	return Item{
		id:         id,
		name:       name,
		department: department,
		price:      price,
		prepTime:   prepTime,
		available:  available,
	}, nil
}

func (i Item) ID() kernel.UUID               { return i.id }
func (i Item) Name() string                  { return i.name }
func (i Item) Department() kernel.Department { return i.department }
func (i Item) Price() decimal.Decimal        { return i.price }
func (i Item) PrepTime() time.Duration       { return i.prepTime }
func (i Item) IsAvailable() bool             { return i.available }

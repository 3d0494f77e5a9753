package handlers

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const dayFormat = "2006-01-02"

var registerOnce sync.Once

// RegisterValidators teaches gin's validator to compare decimal amounts, so tags such as
// gt=0 work on decimal.Decimal fields. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		}
	})
}

func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

// parseDay reads a YYYY-MM-DD value as midnight in loc.
func parseDay(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dayFormat, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// parseOptionalDay is parseDay for optional query values; empty yields nil.
func parseOptionalDay(value string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDay(value, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

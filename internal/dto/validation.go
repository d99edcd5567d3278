package dto

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidations teaches the validator about decimal amounts: decimals are
// validated through their string form and gain the decimal_gt0 and decimal_gte0 tags.
func RegisterValidations(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	if err := v.RegisterValidation("decimal_gt0", func(fl validator.FieldLevel) bool {
		d, ok := decimalField(fl)
		return ok && d.IsPositive()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("decimal_gte0", func(fl validator.FieldLevel) bool {
		d, ok := decimalField(fl)
		return ok && !d.IsNegative()
	})
}

func decimalField(fl validator.FieldLevel) (decimal.Decimal, bool) {
	if fl.Field().Kind() != reflect.String {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

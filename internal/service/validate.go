package service

import (
	"fmt"

	"marcenaria-api/internal/apperr"
	"marcenaria-api/pkg/validator"
)

func validateStruct(data interface{}) error {
	if errs := validator.ValidateStruct(data); len(errs) > 0 {
		first := errs[0]
		return apperr.Invalid(fmt.Sprintf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag))
	}
	return nil
}

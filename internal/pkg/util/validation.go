package util

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct 按 validate 标签校验，只报告第一个失败的字段
func ValidateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			first := vErrs[0]
			return fmt.Errorf("字段 [%s] 校验失败，规则 [%s]", first.Namespace(), first.Tag())
		}
		return err
	}
	return nil
}

package util

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateDTO 校验结构体上的 validate 标签，
// 返回的 validator.ValidationErrors 由响应层归为 400
func ValidateDTO(dto any) error {
	return validate.Struct(dto)
}

// Package validator 注册自定义校验tag到gin的binding引擎
//
//	nodigits      字符串不能包含数字字符(任意Unicode数字)
//	<enum tag>    字符串必须属于给定集合,由RegisterEnum注册
package validator

import (
	"fmt"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Engine 返回gin使用的validator实例
func Engine() (*validator.Validate, error) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, fmt.Errorf("binding引擎不是validator/v10: %T", binding.Validator.Engine())
	}
	return v, nil
}

// Register 在gin的validator上注册nodigits
func Register() error {
	v, err := Engine()
	if err != nil {
		return err
	}
	return RegisterTo(v)
}

// RegisterTo 在指定validator上注册nodigits(测试使用独立实例)
func RegisterTo(v *validator.Validate) error {
	return v.RegisterValidation("nodigits", noDigits)
}

// RegisterEnum 注册集合校验tag,如 bookcategory
func RegisterEnum(v *validator.Validate, tag string, values []string) error {
	set := make(map[string]struct{}, len(values))
	for _, s := range values {
		set[s] = struct{}{}
	}
	return v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		_, ok := set[fl.Field().String()]
		return ok
	})
}

func noDigits(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Package dto 是 go-playground/validator 上的一层薄封装
// 用结构体标签声明校验规则，错误信息可以按 字段+规则 定制
package dto

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError 单个字段的校验失败信息
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Message
}

// Errors 一次校验产生的全部错误
type Errors []FieldError

func (es Errors) Error() string {
	msgs := make([]string, 0, len(es))
	for _, e := range es {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

type Option func(v *Validator)

// Validator 持有一个 validator 实例和定制的错误信息
type Validator struct {
	validate *validator.Validate
	// messages key 形如 "Email.required"
	messages map[string]string
}

func New(opts ...Option) *Validator {
	res := &Validator{
		validate: validator.New(),
		messages: make(map[string]string),
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// WithMessage 定制某个字段在某条规则上的错误信息
// 例如 WithMessage("Email", "required", "Please enter email.")
func WithMessage(field, tag, msg string) Option {
	return func(v *Validator) {
		v.messages[field+"."+tag] = msg
	}
}

// Validate 校验一个 DTO，全部通过返回 nil，否则返回 Errors
func (v *Validator) Validate(val any) error {
	return v.ValidateCtx(context.Background(), val)
}

func (v *Validator) ValidateCtx(ctx context.Context, val any) error {
	err := v.validate.StructCtx(ctx, val)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError 之类的用法错误，原样抛出去
		return err
	}

	res := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := v.messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("字段 %s 未通过规则 %s", fe.Field(), fe.Tag())
		}
		res = append(res, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: msg,
		})
	}
	return res
}

// Package validation registers the custom binding rules and provides the
// middleware that checks request payloads before authentication runs.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/lojinha-dev/lojinha/internal/models"
	"github.com/shopspring/decimal"
)

var (
	registerOnce sync.Once
	periodRegexp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}:\d{4}-\d{2}-\d{2}$`)
)

// Register installs the custom rules on gin's validator. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(fieldName)
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

		_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			return models.Role(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("orderstatus", func(fl validator.FieldLevel) bool {
			return models.OrderStatus(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("periodo", func(fl validator.FieldLevel) bool {
			return periodRegexp.MatchString(fl.Field().String())
		})
	})
}

// decimalValue lets numeric rules such as gt and gte apply to money fields.
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.InexactFloat64()
	}

	return nil
}

func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}

	return field.Name
}

// Message turns a binding error into the Portuguese text sent to the client.
func Message(err error) string {
	var verrs validator.ValidationErrors

	if !errors.As(err, &verrs) {
		return "Erro de validação: requisição malformada"
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, describe(fe))
	}

	return "Erro de validação: " + strings.Join(parts, "; ")
}

func describe(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s é obrigatório", field)
	case "email":
		return fmt.Sprintf("%s deve ser um email válido", field)
	case "uuid", "uuid4":
		return fmt.Sprintf("%s deve ser um UUID válido", field)
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s deve ter ao menos %s item(ns)", field, fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s deve ter pelo menos %s caracteres", field, fe.Param())
		}
		return fmt.Sprintf("%s deve ser no mínimo %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s deve ser maior que %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s deve ser maior ou igual a %s", field, fe.Param())
	case "role":
		return "Tipo de usuário inválido"
	case "orderstatus":
		return "Status do pedido inválido"
	case "periodo":
		return fmt.Sprintf("%s deve seguir o formato AAAA-MM-DD:AAAA-MM-DD", field)
	default:
		return fmt.Sprintf("%s é inválido", field)
	}
}

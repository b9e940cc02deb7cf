package apierror

import (
	"errors"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// FieldErrors は入力検証エラーをフィールド名とメッセージの対応に変換する。
// 入力検証エラーでない場合はnilを返す。
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := jsonName(fe.Field())
		if _, exists := fields[name]; exists {
			continue
		}
		fields[name] = fieldMessage(fe)
	}
	return fields
}

// jsonName はGoのフィールド名をJSONのcamelCase名に変換する。
func jsonName(field string) string {
	r, size := utf8.DecodeRuneInString(field)
	if r == utf8.RuneError {
		return field
	}
	return string(unicode.ToLower(r)) + field[size:]
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Ce champ est obligatoire"
	case "email":
		return "L'adresse email n'est pas valide"
	case "oneof":
		return "La valeur doit être l'une de : " + fe.Param()
	case "min":
		return "La valeur est trop courte (minimum " + fe.Param() + ")"
	case "max":
		return "La valeur est trop longue (maximum " + fe.Param() + ")"
	case "datetime":
		return "La date doit être au format " + fe.Param()
	case "eqfield":
		return "La valeur doit être identique au champ " + jsonName(fe.Param())
	default:
		return "La valeur n'est pas valide"
	}
}

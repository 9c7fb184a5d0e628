package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var personNameRe = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚüÜñÑ ]+$`)

// bcrypt refuses passwords longer than this.
const maxPasswordBytes = 72

// Init configures the global validator used by Gin's binding (query strings, path params).
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		configure(v)
	}
}

// Validator evaluates Schemas against request fields.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()
	configure(v)
	return &Validator{v: v}
}

// configure uses JSON (or form) tag names in errors and registers the clinic
// specific tags and aliases.
func configure(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form", "uri"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return personNameRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= maxPasswordBytes
	})
	v.RegisterAlias("pwd", "min=8,bcryptlen")
	v.RegisterAlias("isodate", "datetime=2006-01-02")
	v.RegisterAlias("hhmm", "datetime=15:04")
}

func formatFieldError(fe validator.FieldError) string {
	return message(ruleOf(fe), fe.Param(), fe.Kind())
}

// ruleOf names the failing rule; an alias is reported by its own name unless
// the byte limit inside it failed.
func ruleOf(fe validator.FieldError) string {
	if fe.ActualTag() == "bcryptlen" {
		return "bcryptlen"
	}
	return fe.Tag()
}

func message(tag, param string, kind reflect.Kind) string {
	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "alphanum":
		return "must contain alphanumeric characters only"
	case "numeric", "number":
		return "must contain digits only"
	case "personname":
		return "must contain letters and spaces only"
	case "pwd":
		return "min length 8"
	case "bcryptlen":
		return "must be at most 72 bytes long"
	case "len":
		return "must be exactly " + param + " characters long"
	case "min":
		if isNumberKind(kind) {
			return "must be at least " + param
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(kind) {
			return "must be at most " + param
		}
		return "must be at most " + param + " characters long"
	case "gt":
		return "must be greater than " + param
	case "gte":
		return "must be greater than or equal to " + param
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "isodate":
		return "must be a date formatted YYYY-MM-DD"
	case "hhmm":
		return "must be a time formatted HH:MM"
	case "datetime":
		return "must match datetime format: " + param
	default:
		if param != "" {
			return "validation failed for '" + tag + "' with parameter '" + param + "'"
		}
		return "validation failed for '" + tag + "'"
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

package schema

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/stremovskyy/go-aditum/document"
)

var (
	validate *validator.Validate
	once     sync.Once
)

var (
	orderIDPattern    = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	personNamePattern = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s]+$`)
)

// rule is a custom validator tag together with how its failures are reported.
type rule struct {
	tag     string
	fn      validator.Func
	code    Code
	message string
}

var rules = []rule{
	{tag: "money", fn: validateMoney, code: CodePrecision, message: "must have at most 2 decimal places"},
	{tag: "order_id", fn: validateOrderID, code: CodeInvalidFormat, message: "may contain only letters, digits, '-' and '_'"},
	{tag: "person_name", fn: validatePersonName, code: CodeInvalidFormat, message: "may contain only letters and spaces"},
	{tag: "document_digits", fn: validateDocumentDigits, code: CodeInvalidFormat, message: "must have 11 or 14 digits"},
	{tag: "tax_id", fn: validateTaxID, code: CodeInvalidChecksum, message: "has an invalid check digit"},
	{tag: "phone_digits", fn: validatePhoneDigits, code: CodeInvalidFormat, message: "must have 10 or 11 digits"},
}

var rulesByTag = func() map[string]rule {
	m := make(map[string]rule, len(rules))
	for _, r := range rules {
		m[r.tag] = r
	}
	return m
}()

// Validator returns the shared validator with the payment tags registered.
// Field names in its errors are the json names.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		for _, r := range rules {
			if err := validate.RegisterValidation(r.tag, r.fn); err != nil {
				panic(fmt.Sprintf("schema: register %s: %v", r.tag, err))
			}
		}
	})
	return validate
}

// validateMoney accepts numbers whose shortest decimal form has at most two
// fractional digits.
func validateMoney(fl validator.FieldLevel) bool {
	return HasCentsPrecision(fl.Field().Float())
}

// HasCentsPrecision reports whether v, written in its shortest decimal form
// without sign, matches digits(.digits{1,2})?.
func HasCentsPrecision(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return decimal.NewFromFloat(v).Exponent() >= -2
}

func validateOrderID(fl validator.FieldLevel) bool {
	return orderIDPattern.MatchString(fl.Field().String())
}

func validatePersonName(fl validator.FieldLevel) bool {
	return personNamePattern.MatchString(fl.Field().String())
}

func validateDocumentDigits(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != document.TaxIDLength && len(s) != document.CompanyIDLength {
		return false
	}
	return document.Digits(s) == s
}

// validateTaxID checksum-verifies 11-digit documents. 14-digit documents pass
// on length alone.
func validateTaxID(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) == document.TaxIDLength {
		return document.IsValidTaxID(s)
	}
	return true
}

func validatePhoneDigits(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 10 && len(s) != 11 {
		return false
	}
	return document.Digits(s) == s
}

// issuesFromError converts validator errors into issues. Errors of any other
// type are reported as a single format issue.
func issuesFromError(err error) Issues {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Issues{{Code: CodeInvalidFormat, Message: err.Error()}}
	}
	out := make(Issues, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, issueFromFieldError(fe))
	}
	return out
}

func issueFromFieldError(fe validator.FieldError) Issue {
	path := fe.Namespace()
	if i := strings.Index(path, "."); i >= 0 {
		path = path[i+1:]
	}

	if r, ok := rulesByTag[fe.Tag()]; ok {
		return Issue{Path: path, Code: r.code, Message: r.message}
	}

	numeric := isNumeric(fe.Kind())
	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return Issue{Path: path, Code: CodeRequired, Message: "is required"}
	case "gt":
		return Issue{Path: path, Code: CodeOutOfRange, Message: "must be greater than " + param}
	case "gte":
		return Issue{Path: path, Code: CodeOutOfRange, Message: "must be at least " + param}
	case "lt":
		return Issue{Path: path, Code: CodeOutOfRange, Message: "must be less than " + param}
	case "lte":
		return Issue{Path: path, Code: CodeOutOfRange, Message: "must be at most " + param}
	case "min":
		if numeric {
			return Issue{Path: path, Code: CodeOutOfRange, Message: "must be at least " + param}
		}
		return Issue{Path: path, Code: CodeInvalidFormat, Message: fmt.Sprintf("must be at least %s characters", param)}
	case "max":
		if numeric {
			return Issue{Path: path, Code: CodeOutOfRange, Message: "must be at most " + param}
		}
		return Issue{Path: path, Code: CodeInvalidFormat, Message: fmt.Sprintf("must be at most %s characters", param)}
	case "email":
		return Issue{Path: path, Code: CodeInvalidFormat, Message: "must be a valid email address"}
	case "oneof":
		return Issue{Path: path, Code: CodeInvalidFormat, Message: "must be one of: " + strings.Join(strings.Fields(param), ", ")}
	default:
		return Issue{Path: path, Code: CodeInvalidFormat, Message: fmt.Sprintf("failed %q check", fe.Tag())}
	}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

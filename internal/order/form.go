package order

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"daggys-menu/internal/model"
)

// CustomerForm is the order form as the user fills it in.
type CustomerForm struct {
	FirstName           string `validate:"required"`
	LastName            string `validate:"required"`
	Email               string `validate:"required,email_shape"`
	Phone               string `validate:"required"`
	Address             string `validate:"required"`
	City                string `validate:"required"`
	ZipCode             string
	SpecialInstructions string
	DiscountCode        string
}

// emailShapeRe matches the local@domain.tld shape the form accepts.
var emailShapeRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Never returns an error for a valid tag name and func.
	_ = v.RegisterValidation("email_shape", func(fl validator.FieldLevel) bool {
		return emailShapeRe.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks the required fields in declaration order and the email
// shape. The first failing field aborts validation; the returned error is a
// *model.FieldError naming that field. A nil return means the form is valid.
func (f CustomerForm) Validate() error {
	err := validate.Struct(f.normalized())
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		// Only reachable on misuse of the validator itself.
		return err
	}

	first := errs[0]
	if first.Tag() == "email_shape" {
		return &model.FieldError{
			Field:   fieldName(first.StructField()),
			Message: "Please enter a valid email address.",
		}
	}
	return &model.FieldError{
		Field:   fieldName(first.StructField()),
		Message: "Please fill in your " + fieldLabel(first.StructField()) + ".",
	}
}

// normalized returns a copy of the form with surrounding whitespace stripped,
// so whitespace-only input counts as blank.
func (f CustomerForm) normalized() CustomerForm {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Address = strings.TrimSpace(f.Address)
	f.City = strings.TrimSpace(f.City)
	f.ZipCode = strings.TrimSpace(f.ZipCode)
	return f
}

// customerInfo converts the form into the snapshot stored with an order.
func (f CustomerForm) customerInfo() model.CustomerInfo {
	n := f.normalized()
	return model.CustomerInfo{
		FirstName:           n.FirstName,
		LastName:            n.LastName,
		Email:               n.Email,
		Phone:               n.Phone,
		Address:             n.Address,
		City:                n.City,
		ZipCode:             n.ZipCode,
		SpecialInstructions: strings.TrimSpace(f.SpecialInstructions),
	}
}

// fieldName lowercases the leading letter of a struct field name, matching
// the form's wire naming (FirstName -> firstName).
func fieldName(structField string) string {
	if structField == "" {
		return structField
	}
	return strings.ToLower(structField[:1]) + structField[1:]
}

// fieldLabel renders a struct field name as a human label
// (FirstName -> "first name").
func fieldLabel(structField string) string {
	var b strings.Builder
	for i, r := range structField {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daggys-menu/internal/model"
)

func validForm() CustomerForm {
	return CustomerForm{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "555-0100",
		Address:   "12 Analytical Way",
		City:      "London",
	}
}

func TestCustomerForm_Validate(t *testing.T) {
	t.Run("Valid form passes", func(t *testing.T) {
		assert.NoError(t, validForm().Validate())
	})

	t.Run("Optional fields may be blank", func(t *testing.T) {
		form := validForm()
		form.ZipCode = ""
		form.SpecialInstructions = ""
		form.DiscountCode = ""
		assert.NoError(t, form.Validate())
	})
}

func TestCustomerForm_Validate_RequiredFields(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*CustomerForm)
		wantField string
		wantMsg   string
	}{
		{
			name:      "Missing first name",
			mutate:    func(f *CustomerForm) { f.FirstName = "" },
			wantField: "firstName",
			wantMsg:   "Please fill in your first name.",
		},
		{
			name:      "Missing last name",
			mutate:    func(f *CustomerForm) { f.LastName = "" },
			wantField: "lastName",
			wantMsg:   "Please fill in your last name.",
		},
		{
			name:      "Missing email",
			mutate:    func(f *CustomerForm) { f.Email = "" },
			wantField: "email",
			wantMsg:   "Please fill in your email.",
		},
		{
			name:      "Missing phone",
			mutate:    func(f *CustomerForm) { f.Phone = "" },
			wantField: "phone",
			wantMsg:   "Please fill in your phone.",
		},
		{
			name:      "Missing address",
			mutate:    func(f *CustomerForm) { f.Address = "" },
			wantField: "address",
			wantMsg:   "Please fill in your address.",
		},
		{
			name:      "Missing city",
			mutate:    func(f *CustomerForm) { f.City = "" },
			wantField: "city",
			wantMsg:   "Please fill in your city.",
		},
		{
			name:      "Whitespace-only counts as blank",
			mutate:    func(f *CustomerForm) { f.FirstName = "   " },
			wantField: "firstName",
			wantMsg:   "Please fill in your first name.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			err := form.Validate()
			require.Error(t, err)

			var fieldErr *model.FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.wantField, fieldErr.Field)
			assert.Equal(t, tt.wantMsg, fieldErr.Message)
		})
	}
}

func TestCustomerForm_Validate_FirstFailureWins(t *testing.T) {
	form := validForm()
	form.FirstName = ""
	form.City = ""

	err := form.Validate()
	require.Error(t, err)

	var fieldErr *model.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "firstName", fieldErr.Field)
}

func TestCustomerForm_Validate_EmailShape(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{
			name:  "Standard address",
			email: "ada@example.com",
		},
		{
			name:  "Subdomain",
			email: "ada@mail.example.co.uk",
		},
		{
			name:    "No at sign",
			email:   "not-an-email",
			wantErr: true,
		},
		{
			name:    "No dot in domain",
			email:   "ada@example",
			wantErr: true,
		},
		{
			name:    "Spaces inside",
			email:   "ada lovelace@example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			form.Email = tt.email

			err := form.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var fieldErr *model.FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, "email", fieldErr.Field)
			assert.Equal(t, "Please enter a valid email address.", fieldErr.Message)
		})
	}
}

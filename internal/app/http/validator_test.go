package httpapp

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type account struct {
	Password string `validate:"password"`
	Phone    string `validate:"phone"`
	Name     string `validate:"notblank"`
}

func TestCustomValidator(t *testing.T) {
	valid := account{Password: "pw12345", Phone: "380501234567", Name: "Kyiv"}

	tests := []struct {
		name    string
		mutate  func(a *account)
		wantErr bool
	}{
		{name: "valid", mutate: func(a *account) {}},
		{name: "unicode lowercase", mutate: func(a *account) { a.Password = "пароль1" }},
		{name: "password too short", mutate: func(a *account) { a.Password = "p123" }, wantErr: true},
		{name: "password without digit", mutate: func(a *account) { a.Password = "password" }, wantErr: true},
		{name: "password without lowercase", mutate: func(a *account) { a.Password = "PASSWORD1" }, wantErr: true},
		{name: "password at byte limit", mutate: func(a *account) { a.Password = "a1" + strings.Repeat("x", 70) }},
		{name: "password over byte limit", mutate: func(a *account) { a.Password = "a1" + strings.Repeat("x", 71) }, wantErr: true},
		{name: "multibyte password over byte limit", mutate: func(a *account) { a.Password = "a1" + strings.Repeat("ж", 36) }, wantErr: true},
		{name: "phone too short", mutate: func(a *account) { a.Phone = "12345" }, wantErr: true},
		{name: "phone too long", mutate: func(a *account) { a.Phone = "12345678901234567" }, wantErr: true},
		{name: "phone with plus", mutate: func(a *account) { a.Phone = "+380501234567" }, wantErr: true},
		{name: "blank name", mutate: func(a *account) { a.Name = " \t " }, wantErr: true},
	}

	v := NewValidator()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid
			tt.mutate(&a)

			err := v.Validate(a)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestMustRegister_PanicsOnEmptyTag(t *testing.T) {
	assert.Panics(t, func() {
		mustRegister(validator.New(), "", validatePhone)
	})
}

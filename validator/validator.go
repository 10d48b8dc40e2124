package validator

import (
	"reflect"
	"sync"

	"github.com/NethermindEth/makimono/db"
	"github.com/NethermindEth/makimono/utils"
	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *validator.Validate
)

func validateBackend(fl validator.FieldLevel) bool {
	backend, ok := fl.Field().Interface().(db.Backend)
	return ok && backend.Known()
}

// Validator returns a singleton that can be used to validate various objects
func Validator() *validator.Validate {
	once.Do(func() {
		v = validator.New()

		if err := v.RegisterValidation("db_backend", validateBackend); err != nil {
			panic("failed to register validation: " + err.Error())
		}

		// Validate log levels by their string representation
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if l, ok := field.Interface().(utils.LogLevel); ok {
				return l.String()
			}
			panic("not a utils.LogLevel")
		}, utils.LogLevel{})
	})
	return v
}

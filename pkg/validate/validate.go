package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// instancia única: el validador cachea la metadata de structs y es seguro
// para uso concurrente.
var v = validator.New(validator.WithRequiredStructEnabled())

// Struct valida un DTO según sus tags `validate`. Devuelve un error con los
// campos fallidos en un mensaje plano apto para ErrorResponse.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("campos inválidos: %s", strings.Join(fields, ", "))
}

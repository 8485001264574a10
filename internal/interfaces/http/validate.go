package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

var validate = validator.New()

func init() {
	// decimal.Decimal se valida como número para que gt=0 / gte=0 funcionen con cantidades.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// qty: cantidad almacenable (3 decimales, menor a 1e11). Corre después de la custom type func
	// de arriba, así que el campo llega como float64.
	_ = validate.RegisterValidation("qty", func(fl validator.FieldLevel) bool {
		f := fl.Field()
		if f.Kind() != reflect.Float64 {
			return false
		}
		return entity.ValidQuantity(decimal.NewFromFloat(f.Float()))
	})

	// reportar los campos con su nombre en el wire
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// requestError es un 400 causado por la forma de la petición y no por reglas de dominio.
type requestError struct {
	code    string
	message string
	fields  map[string]string
}

func (e *requestError) Error() string { return e.message }

// bindBody decodifica un body JSON, urlencoded o multipart en req.
func bindBody(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return &requestError{code: "INVALID_BODY", message: "malformed request body: " + err.Error()}
	}
	return nil
}

// validateStruct ejecuta los tags validate de req.
func validateStruct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &requestError{code: "VALIDATION", message: err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		tag := fe.Tag()
		if fe.Param() != "" {
			tag += "=" + fe.Param()
		}
		fields[fe.Field()] = tag
	}
	return &requestError{code: "VALIDATION", message: "invalid fields", fields: fields}
}

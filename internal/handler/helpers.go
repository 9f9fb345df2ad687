package handler

import (
	"errors"
	"net/http"
	"reflect"

	"vionup/internal/apierror"
	"vionup/internal/dto"
	"vionup/internal/reconcile"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondServiceError maps the reconciliation error taxonomy onto HTTP
// statuses. Duplicates are 409 because the client keeps working and simply
// shows the message; nothing here returns a stack trace.
func respondServiceError(c *gin.Context, err error) {
	var vErr *reconcile.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(map[string]string{vErr.Field: vErr.Message}))
	case errors.Is(err, reconcile.ErrDuplicateMapping),
		errors.Is(err, reconcile.ErrAlreadyLinked):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, apierror.New("Registro nao encontrado"))
	default:
		c.JSON(http.StatusInternalServerError, apierror.New("Erro interno do servidor"))
	}
}

// bindPanelFilter binds and validates the shared two-panel query filter.
func bindPanelFilter(c *gin.Context, filter *dto.PanelFilter) bool {
	if err := c.ShouldBindQuery(filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return false
	}
	if err := validate.Struct(filter); err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New("group_id obrigatorio"))
		return false
	}
	return true
}

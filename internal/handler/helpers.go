package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"

	"github.com/Dignition/colizeum-api/internal/apierror"
	"github.com/Dignition/colizeum-api/internal/middleware"
	"github.com/Dignition/colizeum-api/internal/model"
	"github.com/Dignition/colizeum-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
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
		c.JSON(http.StatusBadRequest, apierror.New("некорректный JSON: "+err.Error()))
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

// currentUser resolves the account behind the request's JWT. Writes 401 and
// returns false when the account is gone or deactivated.
func currentUser(c *gin.Context, auth service.AuthService) (*model.User, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, apierror.New("authentication required"))
		return nil, false
	}
	user, err := auth.CurrentUser(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
		return nil, false
	}
	return user, true
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("некорректный параметр "+name))
		return 0, false
	}
	return uint(v), true
}

func uintQuery(c *gin.Context, name string) uint {
	v, _ := strconv.ParseUint(c.Query(name), 10, 64)
	return uint(v)
}

// writeServiceError maps a service error onto the HTTP envelope, keeping
// coded errors intact.
func writeServiceError(c *gin.Context, err error) {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		status := http.StatusBadRequest
		if apiErr.Code == apierror.CodeForbidden {
			status = http.StatusForbidden
		}
		c.JSON(status, apiErr)
		return
	}
	c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
}

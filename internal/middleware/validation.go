package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/yigit/learnhub/internal/app/models/dto"
)

// BindJSON binds and validates the request body into obj. On failure the
// 400 response is written and false is returned.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		RespondValidationError(c, err)
		return false
	}
	return true
}

// BindQuery binds and validates the query string into obj
func BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		RespondValidationError(c, err)
		return false
	}
	return true
}

// validatorEngine returns gin's validator so path params share the binding rules
func validatorEngine() *validator.Validate {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return v
	}
	return validator.New()
}

// ParseUUIDParam reads the named path parameter as a uuid
func ParseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := c.Param(name)
	if err := validatorEngine().Var(raw, "required,uuid"); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithField(name).
			WithDetails(name + " must be a valid id")
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		RespondValidationError(c, err)
		return uuid.Nil, false
	}
	return id, true
}

// RequireNonEmpty rejects update bodies that carry no field
func RequireNonEmpty(c *gin.Context, empty bool) bool {
	if empty {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data").
			WithDetails("at least one field must be provided")
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return false
	}
	return true
}

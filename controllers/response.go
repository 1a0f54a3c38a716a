package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/phillip/ngo-portal-go/apperrors"
	dto "github.com/phillip/ngo-portal-go/dto"
	middleware "github.com/phillip/ngo-portal-go/middleware"
)

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

// respondError writes the failure envelope. Server-side errors are logged
// with the request id; their text never reaches the client.
func respondError(c *gin.Context, err error) {
	status := apperrors.Status(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[%s] %s %s: %v", c.GetString(middleware.RequestIDKey), c.Request.Method, c.Request.URL.Path, err)
	}
	body := gin.H{"success": false, "error": apperrors.Message(err)}
	if fields := apperrors.Fields(err); fields != nil {
		body["fields"] = fields
	}
	c.AbortWithStatusJSON(status, body)
}

var tagNames sync.Once

// useJSONNames makes validator report fields by their json name, falling back
// to the form name for form-only fields.
func useJSONNames() {
	tagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return ""
		})
	})
}

// bindInput binds the JSON or multipart body onto in and returns the file
// parts of a multipart request. An empty body binds nothing.
func bindInput(c *gin.Context, in any) (dto.Files, error) {
	useJSONNames()
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBind(in); err != nil {
			return nil, bindError(err)
		}
	}

	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) || c.Request.ContentLength == 0 {
			return dto.Files{}, nil
		}
		return nil, apperrors.Validation("body", "invalid form data")
	}
	return dto.Files(form.File), nil
}

func bindError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Validation("body", "malformed request body")
	}
	out := &apperrors.ValidationError{}
	for _, fe := range verrs {
		out.Add(fe.Field(), ruleMessage(fe))
	}
	return out
}

func ruleMessage(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return name + " must be a valid email address"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return name + " is invalid"
	}
}

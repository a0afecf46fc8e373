package handlers

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	log "github.com/sirupsen/logrus"
)

const messageTag = "msg"

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
			log.Fatalf("Cannot register notblank validation: %v", err)
		}
	}
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		badRequest(c, obj, err)
		return false
	}
	return true
}

// badRequest answers with the msg tag of the first invalid field when it has one
func badRequest(c *gin.Context, obj any, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Response{validationMessage(obj, err)})
}

func validationMessage(obj any, err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return "invalid request: " + err.Error()
	}
	t := reflect.TypeOf(obj)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct {
		if field, ok := t.FieldByName(errs[0].StructField()); ok {
			if msg := field.Tag.Get(messageTag); msg != "" {
				return msg
			}
		}
	}
	return errs[0].Error()
}

package apperror

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const maxObjectKeyLen = 512

// Init makes gin's validator report json (or form) field names and registers
// the object_key rule used by image lookups.
func Init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("object_key", func(fl validator.FieldLevel) bool {
		return ValidObjectKey(fl.Field().String())
	})
}

// ValidObjectKey accepts relative bucket keys such as checkin/2024-01-02/V000001/abc.jpg.
func ValidObjectKey(key string) bool {
	if key == "" || len(key) > maxObjectKeyLen || strings.HasPrefix(key, "/") || strings.Contains(key, `\`) {
		return false
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
	}
	return true
}

package serdser

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/momeni/carhub/pkg/core/cerr"
	"github.com/momeni/carhub/pkg/core/log"
	"github.com/momeni/carhub/pkg/core/model"
)

// UnavailableDetail is reported to clients instead of the actual
// data store errors, which are only logged.
const UnavailableDetail = "Service temporarily unavailable, please retry later"

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(paramName)
	}
}

// paramName names a field by its form, json, or uri tag, so validation
// errors are keyed by the names which clients have sent.
func paramName(f reflect.StructField) string {
	for _, key := range [...]string{"form", "json", "uri"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return ""
}

func Bind(c *gin.Context, req any, b binding.Binding) bool {
	switch err := c.ShouldBindWith(req, b).(type) {
	case *validator.InvalidValidationError:
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": err.Error(),
		})
	case validator.ValidationErrors:
		var nameToErrs map[string][]string
		for _, ferr := range err {
			AddErr(&nameToErrs, ferr.Field(), ferr.Error())
		}
		c.JSON(http.StatusBadRequest, nameToErrs)
	default:
		if err == nil {
			return true
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": err.Error(),
		})
	}
	return false
}

func AddErr(errs *map[string][]string, name string, msgs ...string) {
	if (*errs) == nil {
		*errs = make(map[string][]string)
	}
	(*errs)[name] = append((*errs)[name], msgs...)
}

func Assert(errs *map[string][]string, ok bool, name string, msgs ...string) bool {
	if ok {
		return true
	}
	AddErr(errs, name, msgs...)
	return false
}

// SerErr writes err as a {"detail": "..."} response. A *cerr.Error
// selects the status code and other errors are reported with 500.
// Data store failures are logged and replaced by UnavailableDetail.
// Missing listings are also listed in a "missing" field.
func SerErr(c *gin.Context, err error) {
	var ce *cerr.Error
	if !errors.As(err, &ce) {
		log.Error(c, "unexpected error", log.Err("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": err.Error(),
		})
		return
	}
	if cerr.IsDataStore(ce) {
		log.Error(
			c, "data store failure",
			slog.String("path", c.FullPath()), log.Err("err", ce.Err),
		)
		c.JSON(ce.HTTPStatusCode, gin.H{"detail": UnavailableDetail})
		return
	}
	body := gin.H{"detail": ce.Err.Error()}
	var mle model.MissingListingsError
	if errors.As(ce.Err, &mle) {
		body["missing"] = mle
	}
	c.JSON(ce.HTTPStatusCode, body)
}

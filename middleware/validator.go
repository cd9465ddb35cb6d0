package middleware

import (
	"sync"

	"github.com/4GeeksAcademy/Place-Between-Daniel/models"
	"github.com/4GeeksAcademy/Place-Between-Daniel/utils"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the app's custom tags to gin's binding validator:
// hhmm ("06:00"), timezone (IANA name) and session_type (day|night).
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			_, err := utils.ParseClock(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("timezone", func(fl validator.FieldLevel) bool {
			return utils.ValidTimezone(fl.Field().String())
		})
		_ = v.RegisterValidation("session_type", func(fl validator.FieldLevel) bool {
			return models.SessionType(fl.Field().String()).Valid()
		})
	})
}

package dtos

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/workbridge/workbridge/internal/models"
)

// RegisterValidators hooks the custom binding tags into gin's validator.
// Call once at startup, before any request is served.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("jobstatus", func(fl validator.FieldLevel) bool {
		switch models.JobStatus(fl.Field().String()) {
		case models.JobActive, models.JobFilled, models.JobExpired, models.JobDraft:
			return true
		default:
			return false
		}
	})
}

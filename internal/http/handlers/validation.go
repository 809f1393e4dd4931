package handlers

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	maxEvidenceItems  = 50
	maxEvidenceLength = 2048
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding rules on gin's validator.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		err = v.RegisterValidation("evidence", validateEvidence)
	})
	return err
}

// validateEvidence accepts a list of at most maxEvidenceItems non-blank
// references, each no longer than maxEvidenceLength.
func validateEvidence(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return false
	}
	if field.Len() > maxEvidenceItems {
		return false
	}
	for i := 0; i < field.Len(); i++ {
		item := field.Index(i)
		if item.Kind() != reflect.String {
			return false
		}
		s := strings.TrimSpace(item.String())
		if s == "" || len(s) > maxEvidenceLength {
			return false
		}
	}
	return true
}

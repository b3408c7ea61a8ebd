package services

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/wadjakorntonsri/interview-tracker/pkg/core/domain"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func inputValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report fields by their form/json names
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// normalizeInput trims every text field and canonicalises tags.
func normalizeInput(in domain.QuestionInput) domain.QuestionInput {
	return domain.QuestionInput{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Solution:    strings.TrimSpace(in.Solution),
		Difficulty:  strings.TrimSpace(in.Difficulty),
		Company:     strings.TrimSpace(in.Company),
		Tags:        domain.NormalizeTags(in.Tags),
		Solved:      in.Solved,
	}
}

// validateInput returns a *domain.ValidationError naming every empty field.
func validateInput(in domain.QuestionInput) error {
	err := inputValidator().Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	verr := &domain.ValidationError{}
	for _, fe := range fieldErrs {
		verr.Fields = append(verr.Fields, fe.Field())
	}
	return verr
}

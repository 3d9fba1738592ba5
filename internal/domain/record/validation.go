package record

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// saveInput is the validated shape of a normalized save.
type saveInput struct {
	ProjectName  string  `json:"project_name" validate:"required"`
	BU           string  `json:"bu" validate:"required"`
	ProjectType  string  `json:"project_type" validate:"required"`
	AssignedDate string  `json:"assigned_date" validate:"required,datetime=2006-01-02"`
	GDRework     float64 `json:"gd_rework" validate:"gte=0"`
	POCRework    float64 `json:"poc_rework" validate:"gte=0"`
}

// IsSaveValid reports whether the required fields of a save are present.
func IsSaveValid(fields Fields) bool {
	return strings.TrimSpace(fields.ProjectName) != "" &&
		strings.TrimSpace(fields.BU) != "" &&
		strings.TrimSpace(fields.ProjectType) != ""
}

// ValidateFields checks normalized fields before they reach the store.
// It returns a *ValidationError wrapping ErrInvalidInput.
func ValidateFields(fields Fields, candidates Candidates) error {
	input := saveInput{
		ProjectName:  strings.TrimSpace(fields.ProjectName),
		BU:           strings.TrimSpace(fields.BU),
		ProjectType:  strings.TrimSpace(fields.ProjectType),
		AssignedDate: fields.AssignedDate,
		GDRework:     fields.GDRework,
		POCRework:    fields.POCRework,
	}

	verr := &ValidationError{}
	if err := validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			if fe.Tag() == "required" {
				verr.Missing = append(verr.Missing, fe.Field())
			} else {
				verr.Invalid = append(verr.Invalid, fe.Field())
			}
		}
	}

	if input.BU != "" && !allowed(candidates.BusinessUnits, fields.BU) {
		verr.Invalid = append(verr.Invalid, "bu")
	}
	if input.ProjectType != "" && !allowed(candidates.ProjectTypes, fields.ProjectType) {
		verr.Invalid = append(verr.Invalid, "project_type")
	}
	if fields.ClassificationMedia != "" && !allowed(candidates.ClassificationMedia, fields.ClassificationMedia) {
		verr.Invalid = append(verr.Invalid, "classification_media")
	}
	if fields.ContentStatus != "" && !fields.ContentStatus.Valid() {
		verr.Invalid = append(verr.Invalid, "content_status")
	}

	if len(verr.Missing) > 0 || len(verr.Invalid) > 0 {
		return verr
	}
	return nil
}

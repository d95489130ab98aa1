package pstgo

import (
	"github.com/go-playground/validator/v10"

	"github.com/placesyntax/pstgo/radius"
)

// validate is the package-level shared validator instance, registered
// once with a couple of pstgo-specific custom rules, matching the
// shared-instance-plus-init() pattern the retrieval pack's datatypes
// packages use for their own request validation.
var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("distancetype", validateDistanceType)
	_ = validate.RegisterValidation("radiusnonempty", validateRadiusNonEmpty)
}

// validateDistanceType enforces that a rank tag names one of radius's Tag
// slots (TagStraight..TagWeights, 0-5), the metrics a traversal can rank by.
func validateDistanceType(fl validator.FieldLevel) bool {
	v := fl.Field().Int()
	return v >= 0 && v <= int64(radius.TagWeights)
}

// validateRadiusNonEmpty enforces that a RadiusMaskDescriptor activates at
// least one tag; an all-inactive mask degenerates to an unbounded
// traversal, which is legal for analyses but never for the descriptors
// that require a bounded radius (e.g. Reach).
func validateRadiusNonEmpty(fl validator.FieldLevel) bool {
	tags, ok := fl.Field().Interface().([]TagLimit)
	if !ok {
		return true
	}
	return len(tags) > 0
}

// validateStruct runs go-playground/validator over desc and, on failure,
// wraps the first validation error as a BadInput AnalysisError.
func validateStruct(op string, desc interface{}) error {
	if err := validate.Struct(desc); err != nil {
		return &AnalysisError{Kind: KindBadInput, Op: op, Err: err}
	}
	return nil
}

package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/plaggbot/rpg-api/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationError() {
	ve := errors.NewValidationError()
	ve.AddFieldError("name", "is required")
	ve.AddFieldError("email", "is invalid")
	ve.AddFieldErrorf("age", "must be at least %d", 18)

	s.Assert().True(ve.HasErrors())
	s.Assert().Contains(ve.Error(), "name: is required")
	s.Assert().Contains(ve.Error(), "email: is invalid")
	s.Assert().Contains(ve.Error(), "age: must be at least 18")

	err := ve.ToError()
	s.Assert().Equal(errors.CodeInvalidArgument, err.Code)
	s.Assert().NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	vb.Field("name", "is required").
		Fieldf("level", "must be between %d and %d", 1, 100).
		RequiredField("class").
		InvalidField("path", "not a known path")

	err := vb.Build()
	s.Require().NotNil(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	vb := errors.NewValidationBuilder()
	err := vb.Build()
	s.Assert().Nil(err)
}

func (s *ValidationTestSuite) TestValidateRequired() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"valid value", "test", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
		{"valid with spaces", "  test  ", false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateRequired("field", tc.value, vb)
			err := vb.Build()
			if tc.shouldErr {
				s.Assert().NotNil(err)
			} else {
				s.Assert().Nil(err)
			}
		})
	}
}

func (s *ValidationTestSuite) TestValidateRange() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("level", 120, 1, 100, vb)
	errors.ValidateRange("strength", 15, 1, 99, vb)
	errors.ValidateRange("quantity", 0, 1, 100, vb)

	err := vb.Build()
	s.Require().NotNil(err)
	meta := errors.GetMeta(err)
	validationErrors := meta["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors["level"][0], "must be between 1 and 100")
	s.Assert().Contains(validationErrors["quantity"][0], "must be between 1 and 100")
	s.Assert().NotContains(validationErrors, "strength")
}

func (s *ValidationTestSuite) TestValidateEnum() {
	allowedBoards := []string{"level", "gold", "victories", "monsters_killed"}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("board", "deaths", allowedBoards, vb)
	errors.ValidateEnum("sort_board", "gold", allowedBoards, vb)

	err := vb.Build()
	s.Require().NotNil(err)
	meta := errors.GetMeta(err)
	validationErrors := meta["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors["board"][0], "must be one of: level, gold, victories, monsters_killed")
	s.Assert().NotContains(validationErrors, "sort_board")
}

func (s *ValidationTestSuite) TestComplexValidation() {
	// Simulate validating a character creation request
	type CharacterInput struct {
		PlayerID   string
		Class      string
		Level      int
		Attributes map[string]int
	}

	input := CharacterInput{
		PlayerID: "",
		Class:    "paladin",
		Level:    120,
		Attributes: map[string]int{
			"strength":  150,
			"vitality":  15,
			"dexterity": 14,
		},
	}

	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("player_id", input.PlayerID, vb)

	allowedClasses := []string{"warrior", "mage", "rogue", "archer", "healer", "battlemage"}
	errors.ValidateEnum("class", input.Class, allowedClasses, vb)

	errors.ValidateRange("level", input.Level, 1, 100, vb)

	for attribute, value := range input.Attributes {
		errors.ValidateRange(attribute, value, 1, 99, vb)
	}

	err := vb.Build()
	s.Require().NotNil(err)
	s.Assert().True(errors.IsInvalidArgument(err))

	meta := errors.GetMeta(err)
	validationErrors := meta["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors, "player_id")
	s.Assert().Contains(validationErrors, "class")
	s.Assert().Contains(validationErrors, "level")
	s.Assert().Contains(validationErrors, "strength")
}

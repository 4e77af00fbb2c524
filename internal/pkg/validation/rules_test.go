package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusgate/admission-portal/internal/pkg/apperrors"
)

const fiveMB = 5 * 1024 * 1024

func testRules() *UploadRules {
	return NewUploadRules(fiveMB, []string{"image/jpeg", "image/png", "image/jpg", "application/pdf"})
}

func TestUploadRules_Validate(t *testing.T) {
	rules := testRules()

	assert.NoError(t, rules.Validate(1024, "image/jpeg"))
	assert.NoError(t, rules.Validate(fiveMB, "application/pdf"))
	// MIME comparison is case-insensitive
	assert.NoError(t, rules.Validate(1024, "IMAGE/PNG"))
}

func TestUploadRules_FileTooLarge(t *testing.T) {
	rules := testRules()

	err := rules.Validate(fiveMB+1, "image/jpeg")
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
}

func TestUploadRules_TypeNotAllowed(t *testing.T) {
	rules := testRules()

	err := rules.Validate(1024, "application/zip")
	assert.ErrorIs(t, err, apperrors.ErrFileTypeNotAllowed)

	err = rules.Validate(1024, "text/html")
	assert.ErrorIs(t, err, apperrors.ErrFileTypeNotAllowed)
}

func TestUploadRules_ValidateFileHeader_Nil(t *testing.T) {
	rules := testRules()
	assert.Error(t, rules.ValidateFileHeader(nil))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("student@example.com"))
	assert.True(t, ValidEmail("  Upper.Case@Example.COM  "))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail("missing@domain"))
	assert.False(t, ValidEmail(""))
}

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone("9876543210"))
	assert.False(t, ValidPhone("12345"))
	assert.False(t, ValidPhone("98765432101"))
	assert.False(t, ValidPhone("98765abcde"))
}

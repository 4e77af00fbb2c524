package validation

import (
	"fmt"
	"mime/multipart"
	"regexp"
	"strings"

	"github.com/campusgate/admission-portal/internal/pkg/apperrors"
)

// Validation rule patterns
var (
	// EmailPattern matches a conventional mailbox address
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// PhonePattern matches a 10-digit phone number
	PhonePattern = `^[0-9]{10}$`

	PasswordMinLength = 6
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email *regexp.Regexp
	Phone *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
	Phone: regexp.MustCompile(PhonePattern),
}

// ValidEmail reports whether email has a valid format (case-insensitive)
func ValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(strings.ToLower(strings.TrimSpace(email)))
}

// ValidPhone reports whether phone is a 10-digit number
func ValidPhone(phone string) bool {
	return CompiledPatterns.Phone.MatchString(phone)
}

// UploadRules holds the configured limits applied to document uploads.
// Immutable after construction; injected wherever uploads are validated.
type UploadRules struct {
	maxFileSize  int64
	allowedTypes map[string]struct{}
}

// NewUploadRules builds upload rules from the configured size cap and MIME allow-list
func NewUploadRules(maxFileSize int64, allowedMimeTypes []string) *UploadRules {
	allowed := make(map[string]struct{}, len(allowedMimeTypes))
	for _, t := range allowedMimeTypes {
		allowed[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}
	return &UploadRules{
		maxFileSize:  maxFileSize,
		allowedTypes: allowed,
	}
}

// MaxFileSize returns the configured size cap in bytes
func (r *UploadRules) MaxFileSize() int64 {
	return r.maxFileSize
}

// Validate checks a file's size and MIME type against the configured rules.
// It runs before any persistence so violating files are never stored.
func (r *UploadRules) Validate(size int64, mimeType string) error {
	if size > r.maxFileSize {
		return apperrors.NewCustomError(apperrors.ErrFileTooLarge,
			fmt.Sprintf("file size %d exceeds the maximum of %d bytes", size, r.maxFileSize))
	}

	if _, ok := r.allowedTypes[strings.ToLower(mimeType)]; !ok {
		return apperrors.NewCustomError(apperrors.ErrFileTypeNotAllowed,
			fmt.Sprintf("file type %q is not allowed", mimeType))
	}

	return nil
}

// ValidateFileHeader validates a multipart upload against the configured rules
func (r *UploadRules) ValidateFileHeader(fh *multipart.FileHeader) error {
	if fh == nil {
		return apperrors.NewBadRequestError("no file uploaded")
	}
	return r.Validate(fh.Size, fh.Header.Get("Content-Type"))
}

package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleAdmin   RoleType = "admin"
)

// ApplicationStatus represents the review state of an application
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

// IsValidStatus reports whether s is a known application status
func IsValidStatus(s ApplicationStatus) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// DocumentType enumerates the kinds of supporting documents
type DocumentType string

const (
	DocProfilePhoto        DocumentType = "profile_photo"
	DocMarksheet10th       DocumentType = "marksheet_10th"
	DocMarksheet12th       DocumentType = "marksheet_12th"
	DocIDProof             DocumentType = "id_proof"
	DocTransferCertificate DocumentType = "transfer_certificate"
	DocCasteCertificate    DocumentType = "cast_certificate"
	DocOther               DocumentType = "other"
)

// IsValidDocumentType reports whether t is a known document type
func IsValidDocumentType(t DocumentType) bool {
	switch t {
	case DocProfilePhoto, DocMarksheet10th, DocMarksheet12th,
		DocIDProof, DocTransferCertificate, DocCasteCertificate, DocOther:
		return true
	}
	return false
}

// Courses is the fixed list of courses applicants may choose from
var Courses = []string{
	"Computer Science",
	"Electronics & Communication",
	"Mechanical Engineering",
	"Civil Engineering",
	"Electrical Engineering",
	"Information Technology",
	"Business Administration",
	"Commerce",
	"Arts",
}

// IsValidCourse reports whether name is in the fixed course list
func IsValidCourse(name string) bool {
	for _, c := range Courses {
		if c == name {
			return true
		}
	}
	return false
}

package models

import "time"

// Document is one uploaded supporting file tied to exactly one application
// and its owning student.
type Document struct {
	ID                int64        `json:"id" db:"id"`
	ApplicationID     int64        `json:"applicationId" db:"application_id"`
	StudentID         int64        `json:"studentId" db:"student_id"`
	DocumentType      DocumentType `json:"documentType" db:"document_type"`
	FileName          string       `json:"fileName" db:"file_name"`
	FileURL           string       `json:"fileUrl" db:"file_url"`
	StorageKey        string       `json:"storageKey,omitempty" db:"storage_key"`
	FileSize          int64        `json:"fileSize" db:"file_size"`
	MimeType          string       `json:"mimeType" db:"mime_type"`
	IsVerified        bool         `json:"isVerified" db:"is_verified"`
	VerificationNotes string       `json:"verificationNotes,omitempty" db:"verification_notes"`
	UploadedAt        time.Time    `json:"uploadedAt" db:"uploaded_at"`
}

// OwnerID returns the owning student's user ID
func (d *Document) OwnerID() int64 {
	return d.StudentID
}

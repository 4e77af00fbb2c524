package models

import "time"

// PersonalDetails holds applicant personal information
type PersonalDetails struct {
	FullName      string `json:"fullName"`
	FatherName    string `json:"fatherName"`
	MotherName    string `json:"motherName"`
	GuardianPhone string `json:"guardianPhone"`
	Nationality   string `json:"nationality"`
	Category      string `json:"category"`
}

// ExamRecord holds marks for a school-leaving examination
type ExamRecord struct {
	Board        string  `json:"board"`
	School       string  `json:"school"`
	PassingYear  int     `json:"passingYear"`
	Percentage   float64 `json:"percentage"`
	MarksheetURL string  `json:"marksheetUrl,omitempty"`
}

// EntranceExam holds optional entrance examination results
type EntranceExam struct {
	Name         string  `json:"name,omitempty"`
	RollNumber   string  `json:"rollNumber,omitempty"`
	Score        float64 `json:"score,omitempty"`
	Rank         int     `json:"rank,omitempty"`
	ScoreCardURL string  `json:"scoreCardUrl,omitempty"`
}

// AcademicDetails groups the applicant's academic history
type AcademicDetails struct {
	Tenth        ExamRecord    `json:"tenth"`
	Twelfth      ExamRecord    `json:"twelfth"`
	EntranceExam *EntranceExam `json:"entranceExam,omitempty"`
}

// CoursePreferences holds the ranked course choices
type CoursePreferences struct {
	FirstChoice  string `json:"firstChoice"`
	SecondChoice string `json:"secondChoice,omitempty"`
	ThirdChoice  string `json:"thirdChoice,omitempty"`
}

// PaymentDetails records the application fee payment
type PaymentDetails struct {
	Completed     bool       `json:"completed"`
	TransactionID string     `json:"transactionId,omitempty"`
	Amount        float64    `json:"amount,omitempty"`
	Date          *time.Time `json:"date,omitempty"`
	Method        string     `json:"method,omitempty"`
}

// Application is a student's single admission submission.
// The nested detail groups are stored as JSONB columns; documents are
// separate rows in the documents table referencing the application.
type Application struct {
	ID                int64             `json:"id" db:"id"`
	StudentID         int64             `json:"studentId" db:"student_id"`
	PersonalDetails   PersonalDetails   `json:"personalDetails" db:"personal_details"`
	AcademicDetails   AcademicDetails   `json:"academicDetails" db:"academic_details"`
	CoursePreferences CoursePreferences `json:"coursePreferences" db:"course_preferences"`
	Status            ApplicationStatus `json:"status" db:"status"`
	Remarks           string            `json:"remarks" db:"remarks"`
	SubmittedAt       time.Time         `json:"submittedAt" db:"submitted_at"`
	ReviewedAt        *time.Time        `json:"reviewedAt,omitempty" db:"reviewed_at"`
	ReviewedBy        *int64            `json:"reviewedBy,omitempty" db:"reviewed_by"`
	Payment           PaymentDetails    `json:"payment" db:"payment"`
	CreatedAt         time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time         `json:"updatedAt" db:"updated_at"`

	Student   *User       `json:"student,omitempty"`   // Relation, no db tag
	Documents []*Document `json:"documents,omitempty"` // Relation, no db tag
}

// OwnerID returns the owning student's user ID
func (a *Application) OwnerID() int64 {
	return a.StudentID
}

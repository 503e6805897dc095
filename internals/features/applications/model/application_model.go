// file: internals/features/applications/model/application_model.go
package model

import (
	"time"

	"gorm.io/datatypes"
)

/* ======================================================
   ENUM: application_status
====================================================== */

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationApproved, ApplicationRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationApproved || s == ApplicationRejected
}

/* ======================================================
   Model: applications
====================================================== */

type ApplicationModel struct {
	ApplicationID uint `gorm:"column:application_id;primaryKey;autoIncrement" json:"id"`

	// Public reference code (APPyyyymmddXXXXXXXX); immutable.
	ApplicationCode string `gorm:"column:application_code;type:varchar(32);not null;uniqueIndex:uq_applications_code" json:"application_id"`

	// Applicant
	ApplicationFirstName             string `gorm:"column:application_first_name;type:varchar(100);not null" json:"first_name"`
	ApplicationLastName              string `gorm:"column:application_last_name;type:varchar(100);not null" json:"last_name"`
	ApplicationEmail                 string `gorm:"column:application_email;type:varchar(120);not null;index" json:"email"`
	ApplicationPhone                 string `gorm:"column:application_phone;type:varchar(20);not null" json:"phone"`
	ApplicationAddress               string `gorm:"column:application_address;type:text;not null" json:"address"`
	ApplicationDateOfBirth           string `gorm:"column:application_date_of_birth;type:varchar(10);not null" json:"date_of_birth"`
	ApplicationCourse                string `gorm:"column:application_course;type:varchar(50);not null" json:"course_applied"`
	ApplicationPreviousQualification string `gorm:"column:application_previous_qualification;type:varchar(200);not null" json:"previous_qualification"`
	ApplicationCGPA                  string `gorm:"column:application_cgpa;type:varchar(10);not null" json:"cgpa"`

	// Attachments (document handles)
	ApplicationCertificateHandle string         `gorm:"column:application_certificate_handle;type:varchar(255);not null" json:"degree_certificate"`
	ApplicationIDProofHandle     string         `gorm:"column:application_id_proof_handle;type:varchar(255);not null" json:"id_proof"`
	ApplicationAttachmentsMeta   datatypes.JSON `gorm:"column:application_attachments_meta;type:jsonb" json:"attachments,omitempty"`

	// Lifecycle
	ApplicationStatus           ApplicationStatus `gorm:"column:application_status;type:varchar(20);not null;default:'pending';index" json:"status"`
	ApplicationSubmittedAt      time.Time         `gorm:"column:application_submitted_at;type:timestamptz;not null;index" json:"application_date"`
	ApplicationReviewedAt       *time.Time        `gorm:"column:application_reviewed_at;type:timestamptz" json:"reviewed_at,omitempty"`
	ApplicationReviewerComments *string           `gorm:"column:application_reviewer_comments;type:text" json:"admin_comments,omitempty"`
	ApplicationReviewedBy       *string           `gorm:"column:application_reviewed_by;type:varchar(80)" json:"reviewed_by,omitempty"`
	ApplicationLetterHandle     *string           `gorm:"column:application_letter_handle;type:varchar(255)" json:"admission_letter,omitempty"`

	ApplicationUpdatedAt time.Time `gorm:"column:application_updated_at;type:timestamptz;not null;autoUpdateTime" json:"updated_at"`
}

func (ApplicationModel) TableName() string {
	return "applications"
}

func (m *ApplicationModel) FullName() string {
	return m.ApplicationFirstName + " " + m.ApplicationLastName
}

// AttachmentMeta is one entry of application_attachments_meta, keyed by kind.
type AttachmentMeta struct {
	OriginalName string `json:"original_name"`
	ContentType  string `json:"content_type"`
	Size         int64  `json:"size"`
}

// file: internals/features/applications/dto/application_dto.go
package dto

import (
	"strings"
	"time"

	"admissions_backend/internals/constants"
	"admissions_backend/internals/features/applications/model"
)

/* =========================================================
   REQUEST: submit (multipart form fields)
========================================================= */

type SubmitApplicationRequest struct {
	FirstName             string `json:"first_name" form:"first_name" validate:"required,min=2,max=100"`
	LastName              string `json:"last_name" form:"last_name" validate:"required,min=2,max=100"`
	Email                 string `json:"email" form:"email" validate:"required,email,max=120"`
	Phone                 string `json:"phone" form:"phone" validate:"required,min=10,max=20"`
	Address               string `json:"address" form:"address" validate:"required,min=10,max=500"`
	DateOfBirth           string `json:"date_of_birth" form:"date_of_birth" validate:"required,datetime=2006-01-02"`
	CourseApplied         string `json:"course_applied" form:"course_applied" validate:"required,course"`
	PreviousQualification string `json:"previous_qualification" form:"previous_qualification" validate:"required,min=5,max=200"`
	CGPA                  string `json:"cgpa" form:"cgpa" validate:"required,min=1,max=10"`
}

// Normalize trims surrounding whitespace; lengths are validated on the trimmed value.
func (r *SubmitApplicationRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.Address = strings.TrimSpace(r.Address)
	r.DateOfBirth = strings.TrimSpace(r.DateOfBirth)
	r.CourseApplied = strings.TrimSpace(r.CourseApplied)
	r.PreviousQualification = strings.TrimSpace(r.PreviousQualification)
	r.CGPA = strings.TrimSpace(r.CGPA)
}

func (r SubmitApplicationRequest) ToModel() *model.ApplicationModel {
	return &model.ApplicationModel{
		ApplicationFirstName:             r.FirstName,
		ApplicationLastName:              r.LastName,
		ApplicationEmail:                 r.Email,
		ApplicationPhone:                 r.Phone,
		ApplicationAddress:               r.Address,
		ApplicationDateOfBirth:           r.DateOfBirth,
		ApplicationCourse:                r.CourseApplied,
		ApplicationPreviousQualification: r.PreviousQualification,
		ApplicationCGPA:                  r.CGPA,
		ApplicationStatus:                model.ApplicationPending,
	}
}

/* =========================================================
   REQUEST: review / status check
========================================================= */

type ReviewApplicationRequest struct {
	Status   string `json:"status" form:"status" validate:"required,oneof=approved rejected"`
	Comments string `json:"comments" form:"comments" validate:"max=500"`
}

func (r *ReviewApplicationRequest) Normalize() {
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	r.Comments = strings.TrimSpace(r.Comments)
}

type CheckStatusRequest struct {
	ApplicationID string `json:"application_id" form:"application_id" validate:"required"`
}

type ListApplicationsQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=pending approved rejected"`
}

/* =========================================================
   RESPONSES
========================================================= */

type SubmitApplicationResponse struct {
	ApplicationID string                  `json:"application_id"`
	Status        model.ApplicationStatus `json:"status"`
	SubmittedAt   time.Time               `json:"application_date"`
}

// ApplicationSummary is the public status-check view.
type ApplicationSummary struct {
	ApplicationID   string                  `json:"application_id"`
	Name            string                  `json:"name"`
	CourseApplied   string                  `json:"course_applied"`
	CourseLabel     string                  `json:"course_label"`
	Status          model.ApplicationStatus `json:"status"`
	ApplicationDate time.Time               `json:"application_date"`
	ReviewedAt      *time.Time              `json:"reviewed_at,omitempty"`
	AdminComments   *string                 `json:"admin_comments,omitempty"`
	LetterAvailable bool                    `json:"letter_available"`
}

func NewApplicationSummary(m *model.ApplicationModel) ApplicationSummary {
	return ApplicationSummary{
		ApplicationID:   m.ApplicationCode,
		Name:            m.FullName(),
		CourseApplied:   m.ApplicationCourse,
		CourseLabel:     constants.CourseLabel(m.ApplicationCourse),
		Status:          m.ApplicationStatus,
		ApplicationDate: m.ApplicationSubmittedAt,
		ReviewedAt:      m.ApplicationReviewedAt,
		AdminComments:   m.ApplicationReviewerComments,
		LetterAvailable: LetterAvailable(m),
	}
}

// ApplicationDetail is the staff view of a full record.
type ApplicationDetail struct {
	*model.ApplicationModel
	CourseLabel     string `json:"course_label"`
	LetterAvailable bool   `json:"letter_available"`
}

func NewApplicationDetail(m *model.ApplicationModel) ApplicationDetail {
	return ApplicationDetail{
		ApplicationModel: m,
		CourseLabel:      constants.CourseLabel(m.ApplicationCourse),
		LetterAvailable:  LetterAvailable(m),
	}
}

func NewApplicationDetails(rows []model.ApplicationModel) []ApplicationDetail {
	out := make([]ApplicationDetail, 0, len(rows))
	for i := range rows {
		out = append(out, NewApplicationDetail(&rows[i]))
	}
	return out
}

func LetterAvailable(m *model.ApplicationModel) bool {
	return m.ApplicationStatus == model.ApplicationApproved && m.ApplicationLetterHandle != nil
}

/* =========================================================
   API projections (/api/applications)
========================================================= */

type APIApplicationItem struct {
	ID              uint                    `json:"id"`
	ApplicationID   string                  `json:"application_id"`
	Name            string                  `json:"name"`
	Email           string                  `json:"email"`
	Course          string                  `json:"course"`
	Status          model.ApplicationStatus `json:"status"`
	ApplicationDate time.Time               `json:"application_date"`
}

type APIApplicationDetail struct {
	ID              uint                    `json:"id"`
	ApplicationID   string                  `json:"application_id"`
	FirstName       string                  `json:"first_name"`
	LastName        string                  `json:"last_name"`
	Email           string                  `json:"email"`
	Phone           string                  `json:"phone"`
	CourseApplied   string                  `json:"course_applied"`
	CGPA            string                  `json:"cgpa"`
	Status          model.ApplicationStatus `json:"status"`
	ApplicationDate time.Time               `json:"application_date"`
	AdminComments   *string                 `json:"admin_comments"`
}

func NewAPIApplicationItems(rows []model.ApplicationModel) []APIApplicationItem {
	out := make([]APIApplicationItem, 0, len(rows))
	for _, m := range rows {
		out = append(out, APIApplicationItem{
			ID:              m.ApplicationID,
			ApplicationID:   m.ApplicationCode,
			Name:            m.FullName(),
			Email:           m.ApplicationEmail,
			Course:          m.ApplicationCourse,
			Status:          m.ApplicationStatus,
			ApplicationDate: m.ApplicationSubmittedAt,
		})
	}
	return out
}

func NewAPIApplicationDetail(m *model.ApplicationModel) APIApplicationDetail {
	return APIApplicationDetail{
		ID:              m.ApplicationID,
		ApplicationID:   m.ApplicationCode,
		FirstName:       m.ApplicationFirstName,
		LastName:        m.ApplicationLastName,
		Email:           m.ApplicationEmail,
		Phone:           m.ApplicationPhone,
		CourseApplied:   m.ApplicationCourse,
		CGPA:            m.ApplicationCGPA,
		Status:          m.ApplicationStatus,
		ApplicationDate: m.ApplicationSubmittedAt,
		AdminComments:   m.ApplicationReviewerComments,
	}
}

// ApplicationStats backs the admin dashboard counters.
type ApplicationStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// file: internals/features/applications/repository/application_repository.go
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"admissions_backend/internals/features/applications/model"
	"admissions_backend/internals/helpers/apperr"
)

var (
	ErrApplicationNotFound = apperr.New(apperr.KindNotFound, "application not found")
	// ErrStatusConflict is returned by Update when the stored status no longer
	// matches the caller's expectation.
	ErrStatusConflict = apperr.New(apperr.KindInvalidTransition, "application is no longer pending")
)

type ListQuery struct {
	Status model.ApplicationStatus // empty = all
	Offset int
	Limit  int // <= 0 = unbounded
}

type ApplicationRepository interface {
	Insert(ctx context.Context, rec *model.ApplicationModel) error
	GetByIdentity(ctx context.Context, code string) (*model.ApplicationModel, error)
	GetByID(ctx context.Context, id uint) (*model.ApplicationModel, error)
	ListAll(ctx context.Context) ([]model.ApplicationModel, error)
	List(ctx context.Context, q ListQuery) ([]model.ApplicationModel, int64, error)
	// Update replaces every mutable column of rec, but only while the stored
	// status still equals expected.
	Update(ctx context.Context, rec *model.ApplicationModel, expected model.ApplicationStatus) error
	CountByStatus(ctx context.Context) (map[model.ApplicationStatus]int64, error)
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Insert(ctx context.Context, rec *model.ApplicationModel) error {
	err := r.db.WithContext(ctx).Create(rec).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Wrap(apperr.KindDuplicateIdentity, "application id already exists", err)
	}
	return err
}

func (r *applicationRepository) GetByIdentity(ctx context.Context, code string) (*model.ApplicationModel, error) {
	var m model.ApplicationModel
	err := r.db.WithContext(ctx).
		Where("application_code = ?", code).
		Take(&m).Error
	return found(&m, err)
}

func (r *applicationRepository) GetByID(ctx context.Context, id uint) (*model.ApplicationModel, error) {
	var m model.ApplicationModel
	err := r.db.WithContext(ctx).
		Where("application_id = ?", id).
		Take(&m).Error
	return found(&m, err)
}

func found(m *model.ApplicationModel, err error) (*model.ApplicationModel, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *applicationRepository) ListAll(ctx context.Context) ([]model.ApplicationModel, error) {
	rows, _, err := r.List(ctx, ListQuery{})
	return rows, err
}

func (r *applicationRepository) List(ctx context.Context, q ListQuery) ([]model.ApplicationModel, int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.ApplicationModel{})
	if q.Status != "" {
		tx = tx.Where("application_status = ?", q.Status)
	}
	tx = tx.Session(&gorm.Session{})

	var total int64
	if q.Limit > 0 {
		if err := tx.Count(&total).Error; err != nil {
			return nil, 0, err
		}
	}

	var rows []model.ApplicationModel
	page := tx.Order("application_submitted_at DESC").Order("application_id DESC")
	if q.Limit > 0 {
		page = page.Offset(q.Offset).Limit(q.Limit)
	}
	if err := page.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	if q.Limit <= 0 {
		total = int64(len(rows))
	}
	return rows, total, nil
}

func (r *applicationRepository) Update(ctx context.Context, rec *model.ApplicationModel, expected model.ApplicationStatus) error {
	now := r.db.NowFunc()
	res := r.db.WithContext(ctx).
		Model(&model.ApplicationModel{}).
		Where("application_id = ? AND application_status = ?", rec.ApplicationID, expected).
		Updates(map[string]any{
			"application_first_name":             rec.ApplicationFirstName,
			"application_last_name":              rec.ApplicationLastName,
			"application_email":                  rec.ApplicationEmail,
			"application_phone":                  rec.ApplicationPhone,
			"application_address":                rec.ApplicationAddress,
			"application_date_of_birth":          rec.ApplicationDateOfBirth,
			"application_course":                 rec.ApplicationCourse,
			"application_previous_qualification": rec.ApplicationPreviousQualification,
			"application_cgpa":                   rec.ApplicationCGPA,
			"application_certificate_handle":     rec.ApplicationCertificateHandle,
			"application_id_proof_handle":        rec.ApplicationIDProofHandle,
			"application_attachments_meta":       rec.ApplicationAttachmentsMeta,
			"application_status":                 rec.ApplicationStatus,
			"application_reviewed_at":            rec.ApplicationReviewedAt,
			"application_reviewer_comments":      rec.ApplicationReviewerComments,
			"application_reviewed_by":            rec.ApplicationReviewedBy,
			"application_letter_handle":          rec.ApplicationLetterHandle,
			"application_updated_at":             now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusConflict
	}
	rec.ApplicationUpdatedAt = now
	return nil
}

func (r *applicationRepository) CountByStatus(ctx context.Context) (map[model.ApplicationStatus]int64, error) {
	var rows []struct {
		Status model.ApplicationStatus
		N      int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.ApplicationModel{}).
		Select("application_status AS status, COUNT(*) AS n").
		Group("application_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := map[model.ApplicationStatus]int64{
		model.ApplicationPending:  0,
		model.ApplicationApproved: 0,
		model.ApplicationRejected: 0,
	}
	for _, r := range rows {
		out[r.Status] = r.N
	}
	return out, nil
}

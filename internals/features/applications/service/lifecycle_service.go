// file: internals/features/applications/service/lifecycle_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"admissions_backend/internals/constants"
	"admissions_backend/internals/features/applications/dto"
	"admissions_backend/internals/features/applications/model"
	"admissions_backend/internals/features/applications/repository"
	helper "admissions_backend/internals/helpers"
	"admissions_backend/internals/helpers/apperr"
	"admissions_backend/internals/helpers/metrics"
	"admissions_backend/internals/helpers/storage"
)

const (
	AttachmentCertificate = "certificate"
	AttachmentIDProof     = "id_proof"

	maxCodeAttempts = 3
)

var marshalMeta = sonic.Marshal

// Attachment is one uploaded file as received from the transport layer.
type Attachment struct {
	Filename string
	Size     int64
	Body     io.Reader
}

type SubmitInput struct {
	Form        dto.SubmitApplicationRequest
	Certificate *Attachment
	IDProof     *Attachment
}

type Deps struct {
	Repo      repository.ApplicationRepository
	Documents storage.DocumentStore
	Letters   storage.DocumentStore
	Renderer  LetterRenderer
	Log       logrus.FieldLogger
}

// LifecycleService owns every state change of an application: creation as
// pending and the single review transition to approved or rejected.
type LifecycleService struct {
	repo      repository.ApplicationRepository
	documents storage.DocumentStore
	letters   storage.DocumentStore
	renderer  LetterRenderer
	log       logrus.FieldLogger
	newCode   IdentityGenerator
	now       func() time.Time
}

type Option func(*LifecycleService)

func WithIdentityGenerator(g IdentityGenerator) Option {
	return func(s *LifecycleService) { s.newCode = g }
}

func WithClock(now func() time.Time) Option {
	return func(s *LifecycleService) { s.now = now }
}

func NewLifecycleService(d Deps, opts ...Option) *LifecycleService {
	s := &LifecycleService{
		repo:      d.Repo,
		documents: d.Documents,
		letters:   d.Letters,
		renderer:  d.Renderer,
		log:       d.Log,
		newCode:   GenerateApplicationCode,
		now:       func() time.Time { return time.Now().UTC() },
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

/* =========================================================
   SUBMIT
========================================================= */

func (s *LifecycleService) Submit(ctx context.Context, in SubmitInput) (*model.ApplicationModel, error) {
	form := in.Form
	form.Normalize()

	fields := helper.ValidateStruct(form)
	certType, certBody := checkAttachment(in.Certificate, "degree_certificate", &fields)
	idType, idBody := checkAttachment(in.IDProof, "id_proof", &fields)
	if len(fields) > 0 {
		metrics.Submissions.WithLabelValues("invalid").Inc()
		return nil, apperr.Validation(fields)
	}

	// Attachments are written first; if the insert below fails they stay behind
	// as orphans for an out-of-band sweep.
	certHandle, err := s.documents.Save(ctx, "certificates", in.Certificate.Filename, certType, certBody)
	if err != nil {
		metrics.Submissions.WithLabelValues("failed").Inc()
		return nil, apperr.Wrap(apperr.KindStorage, "could not store degree certificate", err)
	}
	idHandle, err := s.documents.Save(ctx, "id_proofs", in.IDProof.Filename, idType, idBody)
	if err != nil {
		metrics.Submissions.WithLabelValues("failed").Inc()
		return nil, apperr.Wrap(apperr.KindStorage, "could not store ID proof", err)
	}

	meta, err := marshalMeta(map[string]model.AttachmentMeta{
		AttachmentCertificate: {OriginalName: in.Certificate.Filename, ContentType: certType, Size: in.Certificate.Size},
		AttachmentIDProof:     {OriginalName: in.IDProof.Filename, ContentType: idType, Size: in.IDProof.Size},
	})
	if err != nil {
		metrics.Submissions.WithLabelValues("failed").Inc()
		return nil, apperr.Wrap(apperr.KindInternal, "could not encode attachment metadata", err)
	}

	rec := form.ToModel()
	rec.ApplicationCertificateHandle = certHandle
	rec.ApplicationIDProofHandle = idHandle
	rec.ApplicationAttachmentsMeta = datatypes.JSON(meta)
	rec.ApplicationSubmittedAt = s.now()

	for attempt := 1; ; attempt++ {
		rec.ApplicationCode = s.newCode(rec.ApplicationSubmittedAt)
		err = s.repo.Insert(ctx, rec)
		if err == nil {
			break
		}
		if errors.Is(err, apperr.ErrDuplicateIdentity) && attempt < maxCodeAttempts {
			s.log.WithField("application_code", rec.ApplicationCode).Warn("application code collision, regenerating")
			continue
		}
		metrics.Submissions.WithLabelValues("failed").Inc()
		if apperr.KindOf(err) != apperr.KindInternal {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.KindStorage, "could not save application", err)
	}

	metrics.Submissions.WithLabelValues("accepted").Inc()
	s.log.WithFields(logrus.Fields{
		"application_code": rec.ApplicationCode,
		"course":           rec.ApplicationCourse,
	}).Info("application submitted")
	return rec, nil
}

// checkAttachment records a field error for a missing or disallowed file and
// otherwise returns its sniffed type and a reader that replays the whole body.
func checkAttachment(a *Attachment, field string, fields *map[string][]string) (string, io.Reader) {
	addErr := func(msg string) {
		if *fields == nil {
			*fields = map[string][]string{}
		}
		(*fields)[field] = append((*fields)[field], msg)
	}
	if a == nil || a.Body == nil || strings.TrimSpace(a.Filename) == "" {
		addErr("This field is required.")
		return "", nil
	}
	ct, body, err := storage.SniffAttachment(a.Filename, a.Body)
	switch {
	case errors.Is(err, storage.ErrEmptyAttachment):
		addErr("This field is required.")
	case errors.Is(err, storage.ErrUnsupportedAttachment):
		addErr("Only PDF, JPG, JPEG, and PNG files are allowed.")
	case err != nil:
		addErr("Could not read file.")
	}
	return ct, body
}

/* =========================================================
   REVIEW
========================================================= */

// Review applies an admin decision to a pending application. ref is either the
// numeric row id or the public application code.
func (s *LifecycleService) Review(ctx context.Context, ref string, in dto.ReviewApplicationRequest, reviewer string) (*model.ApplicationModel, error) {
	in.Normalize()
	if fields := helper.ValidateStruct(in); fields != nil {
		return nil, apperr.Validation(fields)
	}

	current, err := s.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if current.ApplicationStatus.Terminal() {
		metrics.TransitionConflicts.Inc()
		return nil, invalidTransition(current)
	}

	next := *current
	reviewedAt := s.now()
	comments := in.Comments
	next.ApplicationStatus = model.ApplicationStatus(in.Status)
	next.ApplicationReviewedAt = &reviewedAt
	next.ApplicationReviewerComments = &comments
	if reviewer != "" {
		next.ApplicationReviewedBy = &reviewer
	}

	if next.ApplicationStatus == model.ApplicationApproved {
		handle, err := s.renderer.Render(ctx, &next)
		if err != nil {
			metrics.LetterRenders.WithLabelValues("failed").Inc()
			s.log.WithError(err).WithField("application_code", next.ApplicationCode).Error("letter render failed")
			if apperr.KindOf(err) == apperr.KindInternal {
				err = apperr.Wrap(apperr.KindRender, "could not render admission letter", err)
			}
			return nil, err
		}
		metrics.LetterRenders.WithLabelValues("ok").Inc()
		next.ApplicationLetterHandle = &handle
	} else {
		next.ApplicationLetterHandle = nil
	}

	if err := s.repo.Update(ctx, &next, model.ApplicationPending); err != nil {
		if errors.Is(err, apperr.ErrInvalidTransition) {
			metrics.TransitionConflicts.Inc()
			s.log.WithField("application_code", next.ApplicationCode).Warn("concurrent review lost the race")
			if latest, gerr := s.repo.GetByID(ctx, next.ApplicationID); gerr == nil {
				return nil, invalidTransition(latest)
			}
			return nil, err
		}
		return nil, apperr.Wrap(apperr.KindStorage, "could not save review", err)
	}

	metrics.Reviews.WithLabelValues(string(next.ApplicationStatus)).Inc()
	s.log.WithFields(logrus.Fields{
		"application_code": next.ApplicationCode,
		"decision":         next.ApplicationStatus,
		"admin":            reviewer,
	}).Info("application reviewed")
	return &next, nil
}

func invalidTransition(m *model.ApplicationModel) error {
	return apperr.New(apperr.KindInvalidTransition,
		fmt.Sprintf("application %s is already %s", m.ApplicationCode, m.ApplicationStatus))
}

/* =========================================================
   READS
========================================================= */

// Resolve accepts either a numeric row id or an application code.
func (s *LifecycleService) Resolve(ctx context.Context, ref string) (*model.ApplicationModel, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		return s.LookupByID(ctx, uint(id))
	}
	return s.Lookup(ctx, ref)
}

func (s *LifecycleService) Lookup(ctx context.Context, code string) (*model.ApplicationModel, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !IsApplicationCode(code) {
		return nil, repository.ErrApplicationNotFound
	}
	return s.repo.GetByIdentity(ctx, code)
}

func (s *LifecycleService) LookupByID(ctx context.Context, id uint) (*model.ApplicationModel, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *LifecycleService) ListAll(ctx context.Context) ([]model.ApplicationModel, error) {
	return s.repo.ListAll(ctx)
}

func (s *LifecycleService) List(ctx context.Context, q repository.ListQuery) ([]model.ApplicationModel, int64, error) {
	if q.Status != "" && !q.Status.Valid() {
		return nil, 0, apperr.Validation(map[string][]string{"status": {"Must be one of: pending approved rejected."}})
	}
	return s.repo.List(ctx, q)
}

func (s *LifecycleService) Stats(ctx context.Context) (dto.ApplicationStats, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return dto.ApplicationStats{}, err
	}
	st := dto.ApplicationStats{
		Pending:  counts[model.ApplicationPending],
		Approved: counts[model.ApplicationApproved],
		Rejected: counts[model.ApplicationRejected],
	}
	st.Total = st.Pending + st.Approved + st.Rejected
	return st, nil
}

/* =========================================================
   DOWNLOADS
========================================================= */

// Letter opens the admission letter of an approved application. Any other
// status yields LETTER_UNAVAILABLE, even if a handle was left behind.
func (s *LifecycleService) Letter(ctx context.Context, code string) (io.ReadCloser, string, error) {
	rec, err := s.Lookup(ctx, code)
	if err != nil {
		return nil, "", err
	}
	if !dto.LetterAvailable(rec) {
		return nil, "", apperr.New(apperr.KindLetterUnavailable, "admission letter not available")
	}
	body, err := s.letters.Open(ctx, *rec.ApplicationLetterHandle)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, "", apperr.New(apperr.KindLetterUnavailable, "admission letter not available")
	}
	if err != nil {
		return nil, "", apperr.Wrap(apperr.KindStorage, "could not open admission letter", err)
	}
	return body, LetterFilename(rec.ApplicationCode), nil
}

type Document struct {
	Body        io.ReadCloser
	Filename    string
	ContentType string
}

// Document opens one of the two uploaded attachments for staff review.
func (s *LifecycleService) Document(ctx context.Context, ref, kind string) (*Document, error) {
	rec, err := s.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	var handle string
	switch kind {
	case AttachmentCertificate:
		handle = rec.ApplicationCertificateHandle
	case AttachmentIDProof:
		handle = rec.ApplicationIDProofHandle
	default:
		return nil, apperr.New(apperr.KindNotFound, "unknown document kind")
	}

	meta := map[string]model.AttachmentMeta{}
	if len(rec.ApplicationAttachmentsMeta) > 0 {
		_ = sonic.Unmarshal(rec.ApplicationAttachmentsMeta, &meta)
	}
	doc := &Document{Filename: meta[kind].OriginalName, ContentType: meta[kind].ContentType}
	if doc.Filename == "" {
		doc.Filename = handle[strings.LastIndex(handle, "/")+1:]
	}
	if doc.ContentType == "" {
		doc.ContentType = constants.ContentTypeFromExt(handle)
	}

	body, err := s.documents.Open(ctx, handle)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.New(apperr.KindNotFound, "document not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "could not open document", err)
	}
	doc.Body = body
	return doc, nil
}

package service

import (
	"context"
	"sort"
	"sync"

	"admissions_backend/internals/features/applications/model"
	"admissions_backend/internals/features/applications/repository"
	"admissions_backend/internals/helpers/apperr"
)

// memRepo is an in-memory ApplicationRepository with the same compare-and-swap
// contract as the gorm implementation.
type memRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]model.ApplicationModel
}

func newMemRepo() *memRepo {
	return &memRepo{rows: map[uint]model.ApplicationModel{}}
}

func (r *memRepo) Insert(_ context.Context, rec *model.ApplicationModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ApplicationCode == rec.ApplicationCode {
			return apperr.New(apperr.KindDuplicateIdentity, "application id already exists")
		}
	}
	r.nextID++
	rec.ApplicationID = r.nextID
	r.rows[rec.ApplicationID] = *rec
	return nil
}

func (r *memRepo) GetByIdentity(_ context.Context, code string) (*model.ApplicationModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ApplicationCode == code {
			cp := row
			return &cp, nil
		}
	}
	return nil, repository.ErrApplicationNotFound
}

func (r *memRepo) GetByID(_ context.Context, id uint) (*model.ApplicationModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrApplicationNotFound
	}
	return &row, nil
}

func (r *memRepo) ListAll(ctx context.Context) ([]model.ApplicationModel, error) {
	rows, _, err := r.List(ctx, repository.ListQuery{})
	return rows, err
}

func (r *memRepo) List(_ context.Context, q repository.ListQuery) ([]model.ApplicationModel, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.ApplicationModel
	for _, row := range r.rows {
		if q.Status == "" || row.ApplicationStatus == q.Status {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ApplicationSubmittedAt.Equal(out[j].ApplicationSubmittedAt) {
			return out[i].ApplicationSubmittedAt.After(out[j].ApplicationSubmittedAt)
		}
		return out[i].ApplicationID > out[j].ApplicationID
	})
	total := int64(len(out))
	if q.Limit > 0 {
		if q.Offset >= len(out) {
			return nil, total, nil
		}
		end := q.Offset + q.Limit
		if end > len(out) {
			end = len(out)
		}
		out = out[q.Offset:end]
	}
	return out, total, nil
}

func (r *memRepo) Update(_ context.Context, rec *model.ApplicationModel, expected model.ApplicationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[rec.ApplicationID]
	if !ok || row.ApplicationStatus != expected {
		return repository.ErrStatusConflict
	}
	r.rows[rec.ApplicationID] = *rec
	return nil
}

func (r *memRepo) CountByStatus(_ context.Context) (map[model.ApplicationStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[model.ApplicationStatus]int64{}
	for _, row := range r.rows {
		out[row.ApplicationStatus]++
	}
	return out, nil
}

// set overwrites a stored row directly, bypassing the lifecycle.
func (r *memRepo) set(rec model.ApplicationModel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[rec.ApplicationID] = rec
}

package application

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/tutor-marketplace/internal/auth"
	domain "github.com/BruksfildServices01/tutor-marketplace/internal/domain/application"
	"github.com/BruksfildServices01/tutor-marketplace/internal/httperr"
	"github.com/BruksfildServices01/tutor-marketplace/internal/models"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ======================================================
// GET
// ======================================================

type GetApplication struct {
	repo domain.Repository
}

func NewGetApplication(repo domain.Repository) *GetApplication {
	return &GetApplication{repo: repo}
}

func (uc *GetApplication) Execute(
	ctx context.Context,
	actor auth.Identity,
	id uint,
) (*models.Application, error) {

	ap, err := uc.repo.GetApplication(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("application_not_found")
	}
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && !actor.Owns(ap.TutorID) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	return ap, nil
}

// ======================================================
// LIST
// ======================================================

type ListApplicationsInput struct {
	Actor auth.Identity

	// Anonymous callers must name a tuition by its public code.
	TuitionCode string

	TuitionID *uint
	Status    string

	Page  int
	Limit int
}

type ListApplicationsResult struct {
	Items []models.Application
	Total int64
	Page  int
	Limit int

	// Public marks results for anonymous callers; contact data must not be
	// exposed.
	Public bool
}

type ListApplications struct {
	repo domain.Repository
}

func NewListApplications(repo domain.Repository) *ListApplications {
	return &ListApplications{repo: repo}
}

func (uc *ListApplications) Execute(
	ctx context.Context,
	in ListApplicationsInput,
) (*ListApplicationsResult, error) {

	page, limit := normalizePage(in.Page, in.Limit)
	filter := domain.ListFilter{
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	if in.Status != "" {
		status, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = string(status)
	}

	public := false
	switch {
	case in.Actor.IsAdmin():
		filter.TuitionID = in.TuitionID
		if code := strings.TrimSpace(in.TuitionCode); code != "" {
			tu, err := uc.tuitionByCode(ctx, code)
			if err != nil {
				return nil, err
			}
			filter.TuitionID = &tu.ID
		}

	case in.Actor.IsTutor():
		tutorID := in.Actor.UserID
		filter.TutorID = &tutorID
		filter.TuitionID = in.TuitionID

	case strings.TrimSpace(in.TuitionCode) != "":
		tu, err := uc.tuitionByCode(ctx, strings.TrimSpace(in.TuitionCode))
		if err != nil {
			return nil, err
		}
		filter.TuitionID = &tu.ID
		public = true

	default:
		return nil, httperr.ErrBusiness("unauthorized")
	}

	items, total, err := uc.repo.ListApplications(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ListApplicationsResult{
		Items:  items,
		Total:  total,
		Page:   page,
		Limit:  limit,
		Public: public,
	}, nil
}

func (uc *ListApplications) tuitionByCode(ctx context.Context, code string) (*models.Tuition, error) {
	tu, err := uc.repo.GetTuitionByCode(ctx, strings.ToUpper(code))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("tuition_not_found")
	}
	return tu, err
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/tutor-marketplace/internal/audit"
	domain "github.com/BruksfildServices01/tutor-marketplace/internal/domain/application"
	"github.com/BruksfildServices01/tutor-marketplace/internal/models"
)

type fakeRepo struct {
	mu sync.Mutex

	tuitions map[uint]models.Tuition
	tutors   map[uint]models.User
	apps     map[uint]models.Application
	tasks    []models.NotificationTask
	nextID   uint

	saveErr   error
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		tuitions: map[uint]models.Tuition{},
		tutors:   map[uint]models.User{},
		apps:     map[uint]models.Application{},
		nextID:   1,
	}
}

func (f *fakeRepo) GetTuitionByID(_ context.Context, id uint) (*models.Tuition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tu, ok := f.tuitions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &tu, nil
}

func (f *fakeRepo) GetTuitionByCode(_ context.Context, code string) (*models.Tuition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, tu := range f.tuitions {
		if tu.Code == code {
			tu := tu
			return &tu, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetTutorByID(_ context.Context, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.tutors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (f *fakeRepo) HasApplied(_ context.Context, tutorID, tuitionID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ap := range f.apps {
		if ap.TutorID != nil && *ap.TutorID == tutorID && ap.TuitionID == tuitionID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CreateApplication(_ context.Context, ap *models.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	ap.ID = f.nextID
	f.nextID++

	stored := *ap
	stored.Tutor = nil
	f.apps[ap.ID] = stored

	tu := f.tuitions[ap.TuitionID]
	tu.Applications = append(tu.Applications, models.ApplicationRef{
		ApplicationID: ap.ID,
		TutorID:       ap.TutorID,
		GuestName:     ap.GuestName,
		AppliedAt:     ap.AppliedAt,
	})
	f.tuitions[ap.TuitionID] = tu
	return nil
}

// GetApplication returns a copy populated the way the gorm repository
// preloads it.
func (f *fakeRepo) GetApplication(_ context.Context, id uint) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ap, ok := f.apps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if ap.TutorID != nil {
		if u, ok := f.tutors[*ap.TutorID]; ok {
			ap.Tutor = &u
		}
	}
	ap.Tuition = f.tuitions[ap.TuitionID]
	return &ap, nil
}

func (f *fakeRepo) ListApplications(_ context.Context, filter domain.ListFilter) ([]models.Application, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Application
	for id := uint(1); id < f.nextID; id++ {
		ap, ok := f.apps[id]
		if !ok {
			continue
		}
		if filter.TutorID != nil && (ap.TutorID == nil || *ap.TutorID != *filter.TutorID) {
			continue
		}
		if filter.TuitionID != nil && ap.TuitionID != *filter.TuitionID {
			continue
		}
		if filter.Status != "" && ap.Status != filter.Status {
			continue
		}
		out = append(out, ap)
	}
	total := int64(len(out))
	if filter.Limit > 0 {
		if filter.Offset >= len(out) {
			return nil, total, nil
		}
		end := filter.Offset + filter.Limit
		if end > len(out) {
			end = len(out)
		}
		out = out[filter.Offset:end]
	}
	return out, total, nil
}

func (f *fakeRepo) SaveApplication(_ context.Context, ap *models.Application, task *models.NotificationTask) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	stored := *ap
	stored.Tutor = nil
	stored.Tuition = models.Tuition{}
	f.apps[ap.ID] = stored
	if task != nil {
		task.ID = uint(len(f.tasks) + 1)
		f.tasks = append(f.tasks, *task)
	}
	return nil
}

func (f *fakeRepo) DeleteApplication(_ context.Context, ap *models.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.apps, ap.ID)
	return nil
}

func (f *fakeRepo) stored(id uint) models.Application {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.apps[id]
}

type fakeNotifier struct {
	mu       sync.Mutex
	enqueued []*models.NotificationTask
	err      error
}

func (n *fakeNotifier) Enqueue(_ context.Context, task *models.NotificationTask) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enqueued = append(n.enqueued, task)
	return n.err
}

type nopAuditWriter struct{}

func (nopAuditWriter) Log(audit.Event) error { return nil }

func newDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(nopAuditWriter{})
}

// stepClock advances by one minute on every call.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Minute)
	return c.now
}

var errBoom = errors.New("boom")

package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/tutor-marketplace/internal/auth"
	"github.com/BruksfildServices01/tutor-marketplace/internal/config"
	"github.com/BruksfildServices01/tutor-marketplace/internal/models"
	"github.com/BruksfildServices01/tutor-marketplace/internal/routes"
	"github.com/BruksfildServices01/tutor-marketplace/internal/testdb"
)

const testSecret = "test-secret"

type captureNotifier struct {
	mu    sync.Mutex
	tasks []*models.NotificationTask
}

func (n *captureNotifier) Enqueue(_ context.Context, task *models.NotificationTask) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.tasks = append(n.tasks, task)
	return nil
}

func (n *captureNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.tasks)
}

type server struct {
	t        *testing.T
	router   *gin.Engine
	db       *gorm.DB
	notifier *captureNotifier
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testdb.Open(t)
	notifier := &captureNotifier{}

	r := gin.New()
	shutdown := routes.RegisterRoutes(r, routes.Deps{
		DB: db,
		Config: &config.Config{
			JWTSecret: testSecret,
			JWTTTL:    time.Hour,
			Timezone:  "Asia/Dhaka",
		},
		Notifier:   notifier,
		EmailCheck: func(string) bool { return true },
	})
	// runs before testdb closes the database
	t.Cleanup(shutdown)

	return &server{t: t, router: r, db: db, notifier: notifier}
}

func (s *server) token(userID uint, role auth.Role) string {
	s.t.Helper()
	tok, err := auth.IssueToken(testSecret, time.Hour, userID, role)
	require.NoError(s.t, err)
	return tok
}

func (s *server) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *server) seedTuition(code, status string) *models.Tuition {
	s.t.Helper()
	tu := &models.Tuition{
		Code:     code,
		Class:    "Class 10",
		Subject:  "Chemistry",
		Location: "Gulshan",
		Salary:   "10000",
		Status:   status,
	}
	require.NoError(s.t, s.db.Create(tu).Error)
	return tu
}

func (s *server) seedUser(email string, role auth.Role) *models.User {
	s.t.Helper()
	u := &models.User{Name: "User " + email, Email: email, PasswordHash: "x", Role: string(role)}
	require.NoError(s.t, s.db.Create(u).Error)
	return u
}

func (s *server) seedApplication(ap *models.Application) *models.Application {
	s.t.Helper()
	if ap.AppliedAt.IsZero() {
		ap.AppliedAt = time.Now().UTC()
	}
	require.NoError(s.t, s.db.Omit(clause.Associations).Create(ap).Error)
	return ap
}

func (s *server) reload(id uint) models.Application {
	s.t.Helper()
	var ap models.Application
	require.NoError(s.t, s.db.First(&ap, id).Error)
	return ap
}

type applicationView struct {
	ID          uint       `json:"id"`
	Status      string     `json:"status"`
	StatusLabel string     `json:"statusLabel"`
	GuestName   string     `json:"guestName"`
	GuestPhone  string     `json:"guestPhone"`
	TutorID     *uint      `json:"tutorId"`
	ConfirmedAt *time.Time `json:"confirmedAt"`
	CompletedAt *time.Time `json:"completedAt"`
	RejectedAt  *time.Time `json:"rejectedAt"`
	Notes       string     `json:"notes"`

	NextStatuses []string `json:"nextStatuses"`
	Final        bool     `json:"final"`

	Tutor *struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"tutor"`
	Tuition *struct {
		Code    string `json:"code"`
		Subject string `json:"subject"`
	} `json:"tuition"`
}

type applicationResponse struct {
	Success     bool            `json:"success"`
	Application applicationView `json:"application"`
	EmailSent   bool            `json:"emailSent"`
}

type errorResponse struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := AuthHandler{Secret: "test-secret", DB: db}
	r.POST("/api/auth/register", h.Register)
	return r, mock
}

func postRegister(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterExistingEmailRejected(t *testing.T) {
	r, mock := newAuthRouter(t)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("raj@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	w := postRegister(t, r, `{"name":"Raj Mehta","email":"raj@example.com","phone":"9876500000","password":"secret123"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "email already registered")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicateEmailLosingInsertRace(t *testing.T) {
	r, mock := newAuthRouter(t)

	// The COUNT check sees no row, but a concurrent registration wins
	// the insert and the unique key fires.
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("raj@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'raj@example.com' for key 'uniq_email'"})

	w := postRegister(t, r, `{"name":"Raj Mehta","email":"raj@example.com","phone":"9876500000","password":"secret123"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "email already registered")
	require.NoError(t, mock.ExpectationsWereMet())
}

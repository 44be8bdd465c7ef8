package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/avolkov/mini-blog/internal/jwt"
	"github.com/avolkov/mini-blog/internal/middlewares"
	"github.com/avolkov/mini-blog/internal/models"
	"github.com/avolkov/mini-blog/internal/repositories"
	"github.com/avolkov/mini-blog/internal/services"
)

func TestRegisterHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	tests := []struct {
		name         string
		body         any
		rawBody      string // when set, sent as-is to simulate invalid JSON
		mockSetup    func(m *MockRegisterer)
		expectedCode int
	}{
		{
			name: "success",
			body: RegisterRequest{Username: "alice", Email: "a@x.com", Password: "p123"},
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), models.RegisterUser{
						Username: "alice", Email: "a@x.com", Password: "p123",
					}).
					Return(&models.UserDB{UserID: userID, Username: "alice", Email: "a@x.com"}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "conflict",
			body: RegisterRequest{Username: "alice", Email: "a@x.com", Password: "p123"},
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), gomock.Any()).
					Return(nil, services.ErrUserAlreadyExists)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "missing fields",
			body:         RegisterRequest{Username: "alice"},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "invalid json",
			rawBody:      "{invalid json}",
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "internal error",
			body: RegisterRequest{Username: "bob", Email: "b@x.com", Password: "p123"},
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database failure"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockRegisterer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewRegisterHandler(mockSvc)

			var req *http.Request
			if tt.rawBody != "" {
				req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewBufferString(tt.rawBody))
			} else {
				bodyBytes, _ := json.Marshal(tt.body)
				req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewBuffer(bodyBytes))
			}

			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedCode == http.StatusCreated {
				var resp models.UserRead
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, userID, resp.UserID)
				assert.Equal(t, "alice", resp.Username)
				// public view never carries the password hash
				assert.NotContains(t, rr.Body.String(), "password")
			}
		})
	}
}

// The register route runs inside the per-request transaction, so the fresh
// read after the insert must go through that transaction too: on a pool
// connection the uncommitted row is invisible and the handler would blow up
// on a nil user.
func TestRegisterHandler_WithTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")

	userID := uuid.New()
	now := time.Now()

	userColumns := []string{
		"user_id", "username", "email", "password_hash",
		"full_name", "street_address", "zip_code", "city", "country",
		"created_at", "updated_at",
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`WHERE username = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns))
	mock.ExpectQuery(`WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns))
	mock.ExpectExec(`INSERT INTO users`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(userID.String(), "alice", "a@x.com", "hash",
				nil, nil, nil, nil, nil, now, now))
	mock.ExpectCommit()

	readRepo := repositories.NewUserReadRepository(sqlxDB, middlewares.GetTxFromContext)
	writeRepo := repositories.NewUserWriteRepository(sqlxDB, middlewares.GetTxFromContext)
	svc := services.NewUserService(readRepo, writeRepo, jwt.New())

	handler := middlewares.TxMiddleware(sqlxDB)(NewRegisterHandler(svc))

	body, _ := json.Marshal(RegisterRequest{Username: "alice", Email: "a@x.com", Password: "p123"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		handler.ServeHTTP(rr, req)
	})

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp models.UserRead
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, userID, resp.UserID)
	assert.Equal(t, "alice", resp.Username)

	assert.NoError(t, mock.ExpectationsWereMet())
}

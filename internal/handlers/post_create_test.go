package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/avolkov/mini-blog/internal/middlewares"
	"github.com/avolkov/mini-blog/internal/models"
	"github.com/avolkov/mini-blog/internal/services"
)

func TestCreatePostHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	postID := uuid.New()

	tests := []struct {
		name         string
		subject      string
		content      string
		mockSetup    func(m *MockPostCreator)
		expectedCode int
	}{
		{
			name:    "success",
			subject: "alice",
			content: "hello",
			mockSetup: func(m *MockPostCreator) {
				m.EXPECT().
					CreatePost(gomock.Any(), "alice", "hello").
					Return(&models.PostDB{PostID: postID, UserID: userID, Content: "hello"}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:    "content too long",
			subject: "alice",
			content: "x",
			mockSetup: func(m *MockPostCreator) {
				m.EXPECT().
					CreatePost(gomock.Any(), "alice", "x").
					Return(nil, services.ErrContentTooLong)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:    "empty content",
			subject: "alice",
			content: "",
			mockSetup: func(m *MockPostCreator) {
				m.EXPECT().
					CreatePost(gomock.Any(), "alice", "").
					Return(nil, services.ErrEmptyContent)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:    "unresolved subject",
			subject: "ghost",
			content: "hello",
			mockSetup: func(m *MockPostCreator) {
				m.EXPECT().
					CreatePost(gomock.Any(), "ghost", "hello").
					Return(nil, services.ErrUnauthorized)
			},
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockPostCreator(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewCreatePostHandler(mockSvc)

			bodyBytes, _ := json.Marshal(PostContentRequest{Content: tt.content})
			req := httptest.NewRequest(http.MethodPost, "/api/v1/blogs/posts/", bytes.NewBuffer(bodyBytes))
			req = req.WithContext(middlewares.SetSubjectToContext(req.Context(), tt.subject))

			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedCode == http.StatusCreated {
				var resp models.PostRead
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, userID, resp.UserID)
				assert.Equal(t, "hello", resp.Content)
			}
		})
	}
}

package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/avolkov/mini-blog/internal/models"
	"github.com/avolkov/mini-blog/internal/services"
)

func strPtr(s string) *string { return &s }

func TestUserService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name      string
		reg       models.RegisterUser
		mockSetup func(reader *services.MockUserReader, writer *services.MockUserWriter)
		wantErr   error
	}{
		{
			name: "successful registration",
			reg: models.RegisterUser{
				Username: "alice",
				Email:    "alice@example.com",
				Password: "pass123",
				FullName: strPtr("Alice A."),
			},
			mockSetup: func(reader *services.MockUserReader, writer *services.MockUserWriter) {
				reader.EXPECT().GetByUsername(gomock.Any(), "alice").Return(nil, nil)
				reader.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").Return(nil, nil)
				writer.EXPECT().Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user *models.UserDB) error {
						assert.Equal(t, "alice", user.Username)
						assert.NotEqual(t, "pass123", user.PasswordHash)
						assert.NoError(t, bcrypt.CompareHashAndPassword(
							[]byte(user.PasswordHash), []byte("pass123")))
						return nil
					})
				reader.EXPECT().GetByID(gomock.Any(), gomock.Any()).
					Return(&models.UserDB{Username: "alice"}, nil)
			},
		},
		{
			name: "username taken",
			reg:  models.RegisterUser{Username: "bob", Email: "bob@example.com", Password: "x"},
			mockSetup: func(reader *services.MockUserReader, writer *services.MockUserWriter) {
				reader.EXPECT().GetByUsername(gomock.Any(), "bob").
					Return(&models.UserDB{UserID: uuid.New()}, nil)
			},
			wantErr: services.ErrUserAlreadyExists,
		},
		{
			name: "email taken",
			reg:  models.RegisterUser{Username: "carol", Email: "bob@example.com", Password: "x"},
			mockSetup: func(reader *services.MockUserReader, writer *services.MockUserWriter) {
				reader.EXPECT().GetByUsername(gomock.Any(), "carol").Return(nil, nil)
				reader.EXPECT().GetByEmail(gomock.Any(), "bob@example.com").
					Return(&models.UserDB{UserID: uuid.New()}, nil)
			},
			wantErr: services.ErrUserAlreadyExists,
		},
		{
			name: "reader error",
			reg:  models.RegisterUser{Username: "eve", Email: "eve@example.com", Password: "x"},
			mockSetup: func(reader *services.MockUserReader, writer *services.MockUserWriter) {
				reader.EXPECT().GetByUsername(gomock.Any(), "eve").
					Return(nil, errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
		{
			name: "writer error",
			reg:  models.RegisterUser{Username: "dave", Email: "dave@example.com", Password: "x"},
			mockSetup: func(reader *services.MockUserReader, writer *services.MockUserWriter) {
				reader.EXPECT().GetByUsername(gomock.Any(), "dave").Return(nil, nil)
				reader.EXPECT().GetByEmail(gomock.Any(), "dave@example.com").Return(nil, nil)
				writer.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := services.NewMockUserReader(ctrl)
			writer := services.NewMockUserWriter(ctrl)
			issuer := services.NewMockTokenIssuer(ctrl)
			tt.mockSetup(reader, writer)

			svc := services.NewUserService(reader, writer, issuer)

			user, err := svc.Register(context.Background(), tt.reg)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
			}
		})
	}
}

func TestUserService_Authenticate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	stored := &models.UserDB{
		UserID:       uuid.New(),
		Username:     "alice",
		PasswordHash: string(hash),
	}

	tests := []struct {
		name      string
		password  string
		storedRow *models.UserDB
		wantUser  bool
	}{
		{"correct password", "correct", stored, true},
		{"wrong password", "wrong", stored, false},
		{"unknown user", "correct", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := services.NewMockUserReader(ctrl)
			reader.EXPECT().GetByUsername(gomock.Any(), "alice").Return(tt.storedRow, nil)

			svc := services.NewUserService(reader, services.NewMockUserWriter(ctrl), services.NewMockTokenIssuer(ctrl))

			user, err := svc.Authenticate(context.Background(), "alice", tt.password)
			assert.NoError(t, err)
			if tt.wantUser {
				assert.NotNil(t, user)
				assert.Equal(t, "alice", user.Username)
			} else {
				assert.Nil(t, user)
			}
		})
	}
}

func TestUserService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hash, err := bcrypt.GenerateFromPassword([]byte("pass123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	stored := &models.UserDB{
		UserID:       uuid.New(),
		Username:     "alice",
		PasswordHash: string(hash),
	}

	t.Run("success issues token with username subject", func(t *testing.T) {
		reader := services.NewMockUserReader(ctrl)
		issuer := services.NewMockTokenIssuer(ctrl)
		reader.EXPECT().GetByUsername(gomock.Any(), "alice").Return(stored, nil)
		issuer.EXPECT().Generate(gomock.Any(), "alice").Return("token123", nil)

		svc := services.NewUserService(reader, services.NewMockUserWriter(ctrl), issuer)

		token, err := svc.Login(context.Background(), "alice", "pass123")
		assert.NoError(t, err)
		assert.Equal(t, "token123", token)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		reader := services.NewMockUserReader(ctrl)
		reader.EXPECT().GetByUsername(gomock.Any(), "alice").Return(stored, nil)

		svc := services.NewUserService(reader, services.NewMockUserWriter(ctrl), services.NewMockTokenIssuer(ctrl))

		token, err := svc.Login(context.Background(), "alice", "wrong")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
		assert.Empty(t, token)
	})

	t.Run("unknown user", func(t *testing.T) {
		reader := services.NewMockUserReader(ctrl)
		reader.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(nil, nil)

		svc := services.NewUserService(reader, services.NewMockUserWriter(ctrl), services.NewMockTokenIssuer(ctrl))

		token, err := svc.Login(context.Background(), "ghost", "pass123")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
		assert.Empty(t, token)
	})
}

func TestUserService_GetCurrent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("resolves subject", func(t *testing.T) {
		reader := services.NewMockUserReader(ctrl)
		reader.EXPECT().GetByUsername(gomock.Any(), "alice").
			Return(&models.UserDB{Username: "alice"}, nil)

		svc := services.NewUserService(reader, services.NewMockUserWriter(ctrl), services.NewMockTokenIssuer(ctrl))

		user, err := svc.GetCurrent(context.Background(), "alice")
		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("unknown subject is unauthorized", func(t *testing.T) {
		reader := services.NewMockUserReader(ctrl)
		reader.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(nil, nil)

		svc := services.NewUserService(reader, services.NewMockUserWriter(ctrl), services.NewMockTokenIssuer(ctrl))

		user, err := svc.GetCurrent(context.Background(), "ghost")
		assert.ErrorIs(t, err, services.ErrUnauthorized)
		assert.Nil(t, user)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	stored := &models.UserDB{UserID: userID, Username: "alice"}
	patch := models.ProfileUpdate{City: strPtr("Berlin")}

	t.Run("merges patch and returns fresh read", func(t *testing.T) {
		reader := services.NewMockUserReader(ctrl)
		writer := services.NewMockUserWriter(ctrl)
		reader.EXPECT().GetByUsername(gomock.Any(), "alice").Return(stored, nil)
		writer.EXPECT().UpdateProfile(gomock.Any(), userID, patch).Return(nil)
		reader.EXPECT().GetByID(gomock.Any(), userID).
			Return(&models.UserDB{UserID: userID, Username: "alice", City: strPtr("Berlin")}, nil)

		svc := services.NewUserService(reader, writer, services.NewMockTokenIssuer(ctrl))

		user, err := svc.UpdateProfile(context.Background(), "alice", patch)
		assert.NoError(t, err)
		assert.Equal(t, "Berlin", *user.City)
	})

	t.Run("unknown subject is unauthorized", func(t *testing.T) {
		reader := services.NewMockUserReader(ctrl)
		reader.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(nil, nil)

		svc := services.NewUserService(reader, services.NewMockUserWriter(ctrl), services.NewMockTokenIssuer(ctrl))

		user, err := svc.UpdateProfile(context.Background(), "ghost", patch)
		assert.ErrorIs(t, err, services.ErrUnauthorized)
		assert.Nil(t, user)
	})
}

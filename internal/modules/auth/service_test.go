package auth

import (
	"context"
	"errors"
	"testing"

	"talently/internal/domain"
	"talently/internal/modules/session"
	"talently/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockBusinessRepo struct {
	mock.Mock
}

func (m *mockBusinessRepo) Create(ctx context.Context, b *domain.Business) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockBusinessRepo) GetByEmail(ctx context.Context, email string) (*domain.Business, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

func (m *mockBusinessRepo) GetByID(ctx context.Context, id string) (*domain.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

func (m *mockBusinessRepo) Update(ctx context.Context, b *domain.Business) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestService_Signup_Success(t *testing.T) {
	repo := new(mockBusinessRepo)
	svc := NewService(repo, bcrypt.MinCost)

	repo.On("GetByEmail", mock.Anything, "owner@acme.test").Return(nil, repository.ErrNotFound)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Business) bool {
		return b.Name == "Acme Agency" && b.Email == "owner@acme.test" &&
			bcrypt.CompareHashAndPassword([]byte(b.PasswordHash), []byte("password123")) == nil &&
			b.EmailPreferences == domain.DefaultEmailPreferences()
	})).Return(nil)

	b, err := svc.Signup(context.Background(), SignupRequest{
		BusinessName: "Acme Agency",
		Email:        " Owner@Acme.test ",
		Password:     "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, "owner@acme.test", b.Email)
	repo.AssertExpectations(t)
}

func TestService_Signup_Validation(t *testing.T) {
	repo := new(mockBusinessRepo)
	svc := NewService(repo, bcrypt.MinCost)

	_, err := svc.Signup(context.Background(), SignupRequest{Name: "A", Email: "bad", Password: "short"})

	var de *domain.Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, domain.KindValidation, de.Kind)
	assert.Contains(t, de.Details, "name")
	assert.Contains(t, de.Details, "email")
	assert.Contains(t, de.Details, "password")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Signup_DuplicateEmail(t *testing.T) {
	repo := new(mockBusinessRepo)
	svc := NewService(repo, bcrypt.MinCost)
	req := SignupRequest{Name: "Acme", Email: "owner@acme.test", Password: "password123"}

	repo.On("GetByEmail", mock.Anything, "owner@acme.test").Return(&domain.Business{ID: "b1"}, nil).Once()
	_, err := svc.Signup(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	// unique index catches a concurrent signup that passed the lookup
	repo.On("GetByEmail", mock.Anything, "owner@acme.test").Return(nil, repository.ErrNotFound).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate).Once()
	_, err = svc.Signup(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestService_Login(t *testing.T) {
	repo := new(mockBusinessRepo)
	svc := NewService(repo, bcrypt.MinCost)
	stored := &domain.Business{ID: "b1", Email: "owner@acme.test", PasswordHash: hash(t, "password123")}

	repo.On("GetByEmail", mock.Anything, "owner@acme.test").Return(stored, nil)
	repo.On("GetByEmail", mock.Anything, "nobody@acme.test").Return(nil, repository.ErrNotFound)

	b, err := svc.Login(context.Background(), LoginRequest{Email: "OWNER@acme.test", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "b1", b.ID)

	_, wrongPassword := svc.Login(context.Background(), LoginRequest{Email: "owner@acme.test", Password: "nope-nope"})
	_, unknownEmail := svc.Login(context.Background(), LoginRequest{Email: "nobody@acme.test", Password: "password123"})

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownEmail)
}

func TestService_Login_StorageError(t *testing.T) {
	repo := new(mockBusinessRepo)
	svc := NewService(repo, bcrypt.MinCost)
	repo.On("GetByEmail", mock.Anything, "owner@acme.test").Return(nil, errors.New("db down"))

	_, err := svc.Login(context.Background(), LoginRequest{Email: "owner@acme.test", Password: "password123"})
	assert.EqualError(t, err, "db down")
}

func TestService_UpdateProfile_Merge(t *testing.T) {
	repo := new(mockBusinessRepo)
	svc := NewService(repo, bcrypt.MinCost)
	stored := &domain.Business{
		ID:               "b1",
		Name:             "Acme",
		Email:            "owner@acme.test",
		PasswordHash:     hash(t, "password123"),
		EmailPreferences: domain.DefaultEmailPreferences(),
	}

	repo.On("GetByID", mock.Anything, "b1").Return(stored, nil)
	repo.On("GetByEmail", mock.Anything, "new@acme.test").Return(nil, repository.ErrNotFound)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	off := false
	newEmail := "New@Acme.test"
	newPassword := "another-pass"
	b, err := svc.UpdateProfile(context.Background(), "b1", UpdateProfileRequest{
		Email:            &newEmail,
		Password:         &newPassword,
		ConfirmPassword:  &newPassword,
		EmailPreferences: &EmailPreferencesPatch{WeeklyDigest: &off},
	})

	require.NoError(t, err)
	assert.Equal(t, "Acme", b.Name, "omitted fields are kept")
	assert.Equal(t, "new@acme.test", b.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(b.PasswordHash), []byte("another-pass")))
	assert.False(t, b.EmailPreferences.WeeklyDigest)
	assert.True(t, b.EmailPreferences.MarketingEmails)
}

func TestService_UpdateProfile_Rejections(t *testing.T) {
	repo := new(mockBusinessRepo)
	svc := NewService(repo, bcrypt.MinCost)

	repo.On("GetByID", mock.Anything, "b1").Return(&domain.Business{ID: "b1", Email: "owner@acme.test"}, nil)
	repo.On("GetByEmail", mock.Anything, "taken@acme.test").Return(&domain.Business{ID: "b2"}, nil)

	taken := "taken@acme.test"
	_, err := svc.UpdateProfile(context.Background(), "b1", UpdateProfileRequest{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	p1, p2 := "password-one", "password-two"
	_, err = svc.UpdateProfile(context.Background(), "b1", UpdateProfileRequest{Password: &p1, ConfirmPassword: &p2})
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	empty := ""
	_, err = svc.UpdateProfile(context.Background(), "b1", UpdateProfileRequest{Name: &empty})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_UpdateProfile_DeletedAccount(t *testing.T) {
	repo := new(mockBusinessRepo)
	svc := NewService(repo, bcrypt.MinCost)

	repo.On("GetByID", mock.Anything, "gone").Return(nil, repository.ErrNotFound)
	repo.On("GetByID", mock.Anything, "racing").Return(&domain.Business{ID: "racing", Email: "r@acme.test"}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(repository.ErrNotFound)

	name := "New Name"
	_, err := svc.UpdateProfile(context.Background(), "gone", UpdateProfileRequest{Name: &name})
	assert.ErrorIs(t, err, session.ErrUnauthenticated)
	assert.Equal(t, domain.KindUnauthenticated, domain.KindOf(err))

	_, err = svc.UpdateProfile(context.Background(), "racing", UpdateProfileRequest{Name: &name})
	assert.ErrorIs(t, err, session.ErrUnauthenticated)
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"talently/internal/domain"
	"talently/internal/modules/session"
	"talently/internal/pkg/validator"
	"talently/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Service contains the signup, login and profile logic.
type Service struct {
	businesses BusinessRepository
	bcryptCost int
	// dummyHash is compared against when the email is unknown so that both
	// login failures cost one bcrypt comparison.
	dummyHash []byte
}

func NewService(businesses BusinessRepository, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("talently-dummy-password"), bcryptCost)
	return &Service{
		businesses: businesses,
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
	}
}

func (s *Service) Signup(ctx context.Context, req SignupRequest) (*domain.Business, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		req.Name = strings.TrimSpace(req.BusinessName)
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if errs := validator.Validate(req); errs != nil {
		return nil, ErrInvalidInput.WithDetails(errs)
	}

	if _, err := s.businesses.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	b := &domain.Business{
		Name:             req.Name,
		Email:            req.Email,
		PasswordHash:     hash,
		EmailPreferences: domain.DefaultEmailPreferences(),
	}
	if err := s.businesses.Create(ctx, b); err != nil {
		// Lost a race with a concurrent signup for the same email.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}
	return b, nil
}

// Login returns ErrInvalidCredentials for an unknown email and for a wrong
// password alike.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.Business, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	b, err := s.businesses.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(b.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return b, nil
}

// UpdateProfile merges req into the business. A new email must be unused and
// a new password is re-hashed.
func (s *Service) UpdateProfile(ctx context.Context, businessID string, req UpdateProfileRequest) (*domain.Business, error) {
	if errs := validator.Validate(req); errs != nil {
		return nil, ErrInvalidInput.WithDetails(errs)
	}
	if req.Password != nil && req.ConfirmPassword != nil && *req.Password != *req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	b, err := s.businesses.GetByID(ctx, businessID)
	if errors.Is(err, repository.ErrNotFound) {
		// account deleted while the session cookie was still valid
		return nil, session.ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		b.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != b.Email {
			existing, err := s.businesses.GetByEmail(ctx, email)
			if err == nil && existing.ID != b.ID {
				return nil, ErrEmailAlreadyExists
			}
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
			b.Email = email
		}
	}
	if req.Password != nil {
		hash, err := s.hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		b.PasswordHash = hash
	}
	if req.LogoPath != nil {
		b.LogoPath = strings.TrimSpace(*req.LogoPath)
	}
	if p := req.EmailPreferences; p != nil {
		if p.MarketingEmails != nil {
			b.EmailPreferences.MarketingEmails = *p.MarketingEmails
		}
		if p.BookingNotifications != nil {
			b.EmailPreferences.BookingNotifications = *p.BookingNotifications
		}
		if p.WeeklyDigest != nil {
			b.EmailPreferences.WeeklyDigest = *p.WeeklyDigest
		}
	}

	if err := s.businesses.Update(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, session.ErrUnauthenticated
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

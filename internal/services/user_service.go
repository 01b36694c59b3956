package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/dreamfactorysoftware/df-admin-api/internal/domain"
	"github.com/dreamfactorysoftware/df-admin-api/internal/domain/models"
	"github.com/dreamfactorysoftware/df-admin-api/internal/repositories"
	"github.com/dreamfactorysoftware/df-admin-api/internal/utils"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type UserService struct {
	Repo      repositories.UserRepository
	RequestID string
}

func (s UserService) List(p domain.ListParams, adminOnly bool) ([]models.User, int, error) {
	return s.Repo.List(p, adminOnly)
}

func (s UserService) Get(id int64, related []string) (models.User, error) {
	return s.Repo.GetByID(id, related)
}

// Create validates and stores a new user or admin account.
func (s UserService) Create(u models.User, password string) (models.User, error) {
	u.Name = utils.NormalizeSpace(u.Name)
	u.Email = strings.ToLower(utils.TrimOrEmpty(u.Email))
	u.Username = utils.TrimOrEmpty(u.Username)

	if u.Name == "" {
		return u, domain.ValidationError{Field: "name", Msg: "is required"}
	}
	if !emailPattern.MatchString(u.Email) {
		return u, domain.ValidationError{Field: "email", Msg: "is not a valid address"}
	}
	if len(password) < minPasswordLength {
		return u, domain.ValidationError{Field: "password", Msg: fmt.Sprintf("must be at least %d characters", minPasswordLength)}
	}

	n, err := s.Repo.CountByEmailOrUsername(u.Email, u.Username, 0)
	if err != nil {
		return u, err
	}
	if n > 0 {
		return u, domain.ConflictError{Resource: "user", Msg: "email or username already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return u, domain.InternalError{Msg: "failed to hash password", Err: err}
	}
	u.PasswordHash = string(hash)

	created, err := s.Repo.Create(u)
	if err != nil {
		return u, err
	}
	utils.LogEvent(s.RequestID, "users", "create", fmt.Sprintf("user_id=%d", created.ID))
	return created, nil
}

// UpdatePartial applies a key-presence patch, guarding email uniqueness
// when the payload carries one.
func (s UserService) UpdatePartial(id int64, raw []byte) (models.User, error) {
	if email := patchEmail(raw); email != "" {
		n, err := s.Repo.CountByEmailOrUsername(email, "", id)
		if err != nil {
			return models.User{}, err
		}
		if n > 0 {
			return models.User{}, domain.ConflictError{Resource: "user", Msg: "email already registered"}
		}
	}
	updated, err := s.Repo.UpdatePartial(id, raw)
	if err != nil {
		return updated, err
	}
	utils.LogEvent(s.RequestID, "users", "update", fmt.Sprintf("user_id=%d", id))
	return updated, nil
}

func patchEmail(raw []byte) string {
	// cheap presence probe; full validation happens in the repository
	var probe struct {
		Email *string `json:"email"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil || probe.Email == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*probe.Email))
}

func (s UserService) SetPassword(id int64, password string) error {
	if len(password) < minPasswordLength {
		return domain.ValidationError{Field: "password", Msg: fmt.Sprintf("must be at least %d characters", minPasswordLength)}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.InternalError{Msg: "failed to hash password", Err: err}
	}
	if err := s.Repo.SetPassword(id, string(hash)); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "users", "set_password", fmt.Sprintf("user_id=%d", id))
	return nil
}

func (s UserService) Delete(id int64, selfID int64) error {
	if id == selfID {
		return domain.ForbiddenError{Msg: "cannot delete the active session account"}
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "users", "delete", fmt.Sprintf("user_id=%d", id))
	return nil
}

// Authenticate verifies credentials for session creation. The error is
// the same for unknown accounts and bad passwords.
func (s UserService) Authenticate(email, password string) (models.User, error) {
	u, hash, err := s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if domain.IsNotFound(err) {
			return u, domain.UnauthorizedError{Msg: "invalid credentials"}
		}
		return u, err
	}
	if !u.IsActive {
		return u, domain.UnauthorizedError{Msg: "account is inactive"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return u, domain.UnauthorizedError{Msg: "invalid credentials"}
	}
	_ = s.Repo.TouchLastLogin(u.ID)
	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%d", u.ID))
	return u, nil
}

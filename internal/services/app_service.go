package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/dreamfactorysoftware/df-admin-api/internal/domain"
	"github.com/dreamfactorysoftware/df-admin-api/internal/domain/models"
	"github.com/dreamfactorysoftware/df-admin-api/internal/repositories"
	"github.com/dreamfactorysoftware/df-admin-api/internal/utils"
)

type AppService struct {
	Repo      repositories.AppRepository
	RequestID string
	// KeyGen is swappable for deterministic tests.
	KeyGen func() (string, error)
}

// generateAPIKey returns a 64-hex-char key, matching the format the
// console shows and clients send as X-DreamFactory-API-Key.
func generateAPIKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (s AppService) keyGen() (string, error) {
	if s.KeyGen != nil {
		return s.KeyGen()
	}
	return generateAPIKey()
}

func (s AppService) List(p domain.ListParams) ([]models.App, int, error) {
	return s.Repo.List(p)
}

func (s AppService) Get(id int64) (models.App, error) {
	return s.Repo.GetByID(id)
}

func (s AppService) Create(a models.App) (models.App, error) {
	a.Name = utils.NormalizeSpace(a.Name)
	if a.Name == "" {
		return a, domain.ValidationError{Field: "name", Msg: "is required"}
	}
	if a.Type < models.AppTypeNone || a.Type > models.AppTypeOnWebServer {
		return a, domain.ValidationError{Field: "type", Msg: "unknown application type"}
	}
	if a.Type == models.AppTypeRemoteURL && strings.TrimSpace(a.URL) == "" {
		return a, domain.ValidationError{Field: "url", Msg: "is required for remote URL apps"}
	}

	n, err := s.Repo.CountByName(a.Name, 0)
	if err != nil {
		return a, err
	}
	if n > 0 {
		return a, domain.ConflictError{Resource: "app", Msg: "name already in use"}
	}

	key, err := s.keyGen()
	if err != nil {
		return a, domain.InternalError{Msg: "failed to generate API key", Err: err}
	}
	a.APIKey = key

	created, err := s.Repo.Create(a)
	if err != nil {
		return a, err
	}
	utils.LogEvent(s.RequestID, "apps", "create", fmt.Sprintf("app_id=%d", created.ID))
	return created, nil
}

func (s AppService) Update(id int64, a models.App) (models.App, error) {
	a.Name = utils.NormalizeSpace(a.Name)
	if a.Name == "" {
		return a, domain.ValidationError{Field: "name", Msg: "is required"}
	}
	n, err := s.Repo.CountByName(a.Name, id)
	if err != nil {
		return a, err
	}
	if n > 0 {
		return a, domain.ConflictError{Resource: "app", Msg: "name already in use"}
	}
	updated, err := s.Repo.Update(id, a)
	if err != nil {
		return updated, err
	}
	utils.LogEvent(s.RequestID, "apps", "update", fmt.Sprintf("app_id=%d", id))
	return updated, nil
}

// ResetAPIKey rotates the key; the old key stops working immediately.
func (s AppService) ResetAPIKey(id int64) (models.App, error) {
	key, err := s.keyGen()
	if err != nil {
		return models.App{}, domain.InternalError{Msg: "failed to generate API key", Err: err}
	}
	if err := s.Repo.ResetAPIKey(id, key); err != nil {
		return models.App{}, err
	}
	utils.LogEvent(s.RequestID, "apps", "reset_api_key", fmt.Sprintf("app_id=%d", id))
	return s.Repo.GetByID(id)
}

func (s AppService) Delete(id int64) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "apps", "delete", fmt.Sprintf("app_id=%d", id))
	return nil
}

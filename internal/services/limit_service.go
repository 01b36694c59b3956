package services

import (
	"fmt"
	"strings"

	"github.com/dreamfactorysoftware/df-admin-api/internal/domain"
	"github.com/dreamfactorysoftware/df-admin-api/internal/domain/models"
	"github.com/dreamfactorysoftware/df-admin-api/internal/repositories"
	"github.com/dreamfactorysoftware/df-admin-api/internal/utils"
)

type LimitService struct {
	Repo      repositories.LimitRepository
	RequestID string
}

func (s LimitService) List(p domain.ListParams) ([]models.Limit, int, error) {
	return s.Repo.List(p)
}

func (s LimitService) Get(id int64) (models.Limit, error) {
	return s.Repo.GetByID(id)
}

func (s LimitService) Create(l models.Limit) (models.Limit, error) {
	if err := validateLimit(l); err != nil {
		return l, err
	}
	created, err := s.Repo.Create(l)
	if err != nil {
		return l, err
	}
	utils.LogEvent(s.RequestID, "limits", "create", fmt.Sprintf("limit_id=%d", created.ID))
	return created, nil
}

func (s LimitService) UpdatePartial(id int64, raw []byte) (models.Limit, error) {
	updated, err := s.Repo.UpdatePartial(id, raw)
	if err != nil {
		return updated, err
	}
	utils.LogEvent(s.RequestID, "limits", "update", fmt.Sprintf("limit_id=%d", id))
	return updated, nil
}

func (s LimitService) Delete(id int64) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "limits", "delete", fmt.Sprintf("limit_id=%d", id))
	return nil
}

func validateLimit(l models.Limit) error {
	if strings.TrimSpace(l.Name) == "" {
		return domain.ValidationError{Field: "name", Msg: "is required"}
	}
	if l.Rate <= 0 {
		return domain.ValidationError{Field: "rate", Msg: "must be a positive integer"}
	}

	periodOK := false
	for _, p := range models.LimitPeriods {
		if p == l.Period {
			periodOK = true
			break
		}
	}
	if !periodOK {
		return domain.ValidationError{Field: "period", Msg: fmt.Sprintf("unknown period %q", l.Period)}
	}

	typeOK := false
	for _, t := range models.LimitTypes {
		if t == l.Type {
			typeOK = true
			break
		}
	}
	if !typeOK {
		return domain.ValidationError{Field: "type", Msg: fmt.Sprintf("unknown limit type %q", l.Type)}
	}

	// scoped types need their scope id
	if strings.Contains(l.Type, ".user") && !strings.Contains(l.Type, "each_user") && l.UserID == nil {
		return domain.ValidationError{Field: "user_id", Msg: "is required for user-scoped limits"}
	}
	if strings.Contains(l.Type, ".role") && l.RoleID == nil {
		return domain.ValidationError{Field: "role_id", Msg: "is required for role-scoped limits"}
	}
	if strings.Contains(l.Type, ".service") && l.ServiceID == nil {
		return domain.ValidationError{Field: "service_id", Msg: "is required for service-scoped limits"}
	}
	if strings.HasSuffix(l.Type, ".endpoint") && strings.TrimSpace(l.Endpoint) == "" {
		return domain.ValidationError{Field: "endpoint", Msg: "is required for endpoint-scoped limits"}
	}
	return nil
}

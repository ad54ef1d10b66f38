package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/dangerclosesec/tabbedjournal/internal/domain"
	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/dangerclosesec/tabbedjournal/internal/repository"
	"github.com/google/uuid"
)

const (
	maxTabNameLength = 64
	// maxSlugAttempts bounds retries when concurrent writers race for a slug.
	maxSlugAttempts = 5
)

// TabService manages the tabs entries are filed under.
type TabService struct {
	repo  repository.TabRepositoryIface
	graph *MembershipGraph
	authz *AuthzService
}

func NewTabService(repo repository.TabRepositoryIface, graph *MembershipGraph, authz *AuthzService) *TabService {
	return &TabService{repo: repo, graph: graph, authz: authz}
}

// Create adds a tab to the actor's organization.
func (s *TabService) Create(ctx context.Context, actor *model.User, name string, enabled bool) (*model.Tab, error) {
	org, err := s.authz.RequireModerator(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, org.ID, &actor.ID, name, enabled)
}

func (s *TabService) create(ctx context.Context, orgID uuid.UUID, creatorID *uuid.UUID, name string, enabled bool) (*model.Tab, error) {
	name, err := cleanTabName(name)
	if err != nil {
		return nil, err
	}

	tab := &model.Tab{
		OrganizationID: orgID,
		Name:           name,
		Enabled:        enabled,
		Visibility:     model.VisibilityAuthor,
		CreatedByID:    creatorID,
	}

	err = s.withUniqueSlug(ctx, orgID, uuid.Nil, model.Slugify(name), func(slug string) error {
		tab.Slug = slug
		return s.repo.Create(ctx, tab)
	})
	if err != nil {
		return nil, err
	}
	return tab, nil
}

// Rename changes a tab's name and regenerates its slug.
func (s *TabService) Rename(ctx context.Context, actor *model.User, tabID uuid.UUID, name string) (*model.Tab, error) {
	org, err := s.authz.RequireModerator(ctx, actor)
	if err != nil {
		return nil, err
	}

	tab, err := s.repo.FindInOrg(ctx, tabID, org.ID)
	if err != nil {
		return nil, err
	}

	name, err = cleanTabName(name)
	if err != nil {
		return nil, err
	}
	if name == tab.Name {
		return tab, nil
	}
	tab.Name = name

	err = s.withUniqueSlug(ctx, org.ID, tab.ID, model.Slugify(name), func(slug string) error {
		tab.Slug = slug
		return s.repo.Update(ctx, tab)
	})
	if err != nil {
		return nil, err
	}
	return tab, nil
}

// withUniqueSlug calls write with the first free slug candidate for base and
// moves on to the next candidate when write loses a race for it.
func (s *TabService) withUniqueSlug(ctx context.Context, orgID, excludeID uuid.UUID, base string, write func(slug string) error) error {
	n := 1
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		for {
			exists, err := s.repo.SlugExists(ctx, orgID, model.SlugCandidate(base, n), excludeID)
			if err != nil {
				return err
			}
			if !exists {
				break
			}
			n++
		}

		err := write(model.SlugCandidate(base, n))
		if !errors.Is(err, repository.ErrSlugConflict) {
			return err
		}
		n++
	}
	return fmt.Errorf("allocating slug for %q: %w", base, repository.ErrSlugConflict)
}

// Toggle flips a tab between enabled and disabled. Entries keep their tabs.
func (s *TabService) Toggle(ctx context.Context, actor *model.User, tabID uuid.UUID) (*model.Tab, error) {
	org, err := s.authz.RequireModerator(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.repo.Toggle(ctx, tabID, org.ID)
}

// List returns the tabs of the actor's organization, enabled first. Only
// moderators see disabled tabs.
func (s *TabService) List(ctx context.Context, actor *model.User) ([]model.Tab, error) {
	org, err := s.graph.PrimaryOrg(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNoOrganization) {
			return []model.Tab{}, nil
		}
		return nil, err
	}

	tabs, err := s.repo.ListByOrg(ctx, org.ID)
	if err != nil {
		return nil, err
	}

	role, err := s.graph.RoleOf(ctx, actor.ID, org.ID)
	if err != nil {
		return nil, err
	}
	if role.IsModerator() || actor.IsSuperuser {
		return tabs, nil
	}

	enabled := tabs[:0]
	for _, t := range tabs {
		if t.Enabled {
			enabled = append(enabled, t)
		}
	}
	return enabled, nil
}

// EnsureDefault returns the organization's "General" tab, creating it when
// missing.
func (s *TabService) EnsureDefault(ctx context.Context, orgID uuid.UUID, creatorID uuid.UUID) (*model.Tab, error) {
	tab, err := s.repo.FindByName(ctx, orgID, model.DefaultTabName)
	if err == nil {
		return tab, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	tab, err = s.create(ctx, orgID, &creatorID, model.DefaultTabName, true)
	if errors.Is(err, domain.ErrTabNameTaken) {
		return s.repo.FindByName(ctx, orgID, model.DefaultTabName)
	}
	return tab, err
}

func cleanTabName(name string) (string, error) {
	name = model.NormalizeTabName(name)
	if name == "" {
		return "", fieldError("name", "This field is required.")
	}
	if utf8.RuneCountInString(name) > maxTabNameLength {
		return "", fieldError("name", fmt.Sprintf("Ensure this value has at most %d characters.", maxTabNameLength))
	}
	return name, nil
}

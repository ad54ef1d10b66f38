package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dangerclosesec/tabbedjournal/internal/domain"
	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/dangerclosesec/tabbedjournal/internal/repository"
)

// Onboarding steps in the order the wizard walks them.
const (
	StepFullName = iota + 1
	StepTab
	StepFirstEntry
	StepInvite
	StepFinish
)

type OnboardingState struct {
	Enabled bool `json:"enabled"`
	Step    int  `json:"step"`
	// Notice explains a step that was skipped instead of performed.
	Notice string `json:"notice,omitempty"`
}

// StepInput carries the form of every step; each step reads its own fields.
type StepInput struct {
	Skip bool `json:"skip"`

	FullName string `json:"full_name"`

	TabName string `json:"tab_name"`

	EntryTitle string `json:"entry_title"`
	EntryBody  string `json:"entry_body"`

	InviteDelivery string `json:"invite_delivery"`
	InviteEmail    string `json:"invite_email"`
	InvitePhone    string `json:"invite_phone"`
	InviteRole     string `json:"invite_role"`
}

// OnboardingService walks a new user through setting up their profile,
// organization and first entry. Each step delegates to the service that owns
// the data.
type OnboardingService struct {
	profiles repository.ProfileRepositoryIface
	graph    *MembershipGraph
	tabs     *TabService
	entries  *EntryService
	invites  *InviteService
}

func NewOnboardingService(
	profiles repository.ProfileRepositoryIface,
	graph *MembershipGraph,
	tabs *TabService,
	entries *EntryService,
	invites *InviteService,
) *OnboardingService {
	return &OnboardingService{
		profiles: profiles,
		graph:    graph,
		tabs:     tabs,
		entries:  entries,
		invites:  invites,
	}
}

func (s *OnboardingService) State(ctx context.Context, actor *model.User) (*OnboardingState, error) {
	profile, err := s.profiles.FindOrCreate(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return &OnboardingState{
		Enabled: profile.OnboardingEnabled,
		Step:    model.ClampStep(profile.OnboardingStep),
	}, nil
}

// Enable restarts the wizard from the first step.
func (s *OnboardingService) Enable(ctx context.Context, actor *model.User) (*OnboardingState, error) {
	return s.save(ctx, actor, true, model.OnboardingFirstStep)
}

// Disable hides the wizard and keeps the current step.
func (s *OnboardingService) Disable(ctx context.Context, actor *model.User) (*OnboardingState, error) {
	state, err := s.State(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, actor, false, state.Step)
}

func (s *OnboardingService) save(ctx context.Context, actor *model.User, enabled bool, step int) (*OnboardingState, error) {
	profile, err := s.profiles.FindOrCreate(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	step = model.ClampStep(step)
	if err := s.profiles.UpdateOnboarding(ctx, profile.ID, enabled, step); err != nil {
		return nil, err
	}
	return &OnboardingState{Enabled: enabled, Step: step}, nil
}

// Advance completes step (or skips it) and moves to the next one. The last
// step turns the wizard off.
func (s *OnboardingService) Advance(ctx context.Context, actor *model.User, step int, input StepInput) (*OnboardingState, error) {
	profile, err := s.profiles.FindOrCreate(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if !profile.OnboardingEnabled {
		return nil, domain.ErrAuthorizationDenied
	}

	step = model.ClampStep(step)
	if step == StepFinish {
		return s.save(ctx, actor, false, StepFinish)
	}

	var notice string
	if !input.Skip {
		notice, err = s.perform(ctx, actor, profile, step, input)
		if err != nil {
			return nil, err
		}
	}

	state, err := s.save(ctx, actor, true, step+1)
	if err != nil {
		return nil, err
	}
	state.Notice = notice
	return state, nil
}

// perform runs the action behind step. A non-empty notice means the step
// could not apply to this user and was skipped.
func (s *OnboardingService) perform(ctx context.Context, actor *model.User, profile *model.UserProfile, step int, input StepInput) (string, error) {
	switch step {
	case StepFullName:
		name := strings.TrimSpace(input.FullName)
		if name == "" {
			return "", fieldError("full_name", "This field is required.")
		}
		if err := validateInput(ProfileInput{FullName: name}); err != nil {
			return "", err
		}
		profile.FullName = name
		return "", s.profiles.Update(ctx, profile)

	case StepTab:
		if _, err := s.graph.PrimaryOrg(ctx, actor.ID); err != nil {
			if errors.Is(err, domain.ErrNoOrganization) {
				return "Join or create an organization to add tabs.", nil
			}
			return "", err
		}
		_, err := s.tabs.Create(ctx, actor, input.TabName, true)
		if errors.Is(err, domain.ErrAuthorizationDenied) {
			return "Only moderators can add tabs.", nil
		}
		return "", err

	case StepFirstEntry:
		_, err := s.entries.Create(ctx, actor, EntryInput{
			Title: strings.TrimSpace(input.EntryTitle),
			Body:  input.EntryBody,
		}, nil)
		if errors.Is(err, domain.ErrNoOrganization) {
			return "Join or create an organization to write entries.", nil
		}
		return "", err

	case StepInvite:
		if strings.TrimSpace(input.InviteEmail) == "" && strings.TrimSpace(input.InvitePhone) == "" {
			return "", nil
		}
		delivery := input.InviteDelivery
		if delivery == "" && input.InviteEmail == "" {
			delivery = string(model.DeliverySMS)
		}
		role := input.InviteRole
		if role == "" {
			role = string(model.RoleAuthor)
		}
		_, err := s.invites.Issue(ctx, actor, IssueInviteInput{
			Role:     role,
			Delivery: delivery,
			Email:    input.InviteEmail,
			Phone:    input.InvitePhone,
		})
		if errors.Is(err, domain.ErrAuthorizationDenied) {
			return "Only moderators can send invites.", nil
		}
		return "", err
	}
	return "", nil
}

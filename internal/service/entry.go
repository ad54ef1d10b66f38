package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dangerclosesec/tabbedjournal/internal/audit"
	"github.com/dangerclosesec/tabbedjournal/internal/domain"
	"github.com/dangerclosesec/tabbedjournal/internal/metrics"
	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/dangerclosesec/tabbedjournal/internal/repository"
	"github.com/dangerclosesec/tabbedjournal/internal/storage"
	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	// stateNew labels the source state of a freshly created entry.
	stateNew = "new"
)

// Page selects a window of a listing.
type Page struct {
	Offset int
	Limit  int
}

func (p Page) normalized() Page {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 {
		p.Limit = defaultPageSize
	}
	if p.Limit > maxPageSize {
		p.Limit = maxPageSize
	}
	return p
}

type EntryPage struct {
	Entries []model.Entry `json:"entries"`
	Total   int64         `json:"total"`
}

// TransitionResult reports the outcome of a status change. AlreadyHandled
// means another request moved the entry first; it is not an error.
type TransitionResult struct {
	Entry          *model.Entry `json:"entry,omitempty"`
	AlreadyHandled bool         `json:"already_handled"`
}

type EntryInput struct {
	Title  string      `json:"title" validate:"required,max=200"`
	Body   string      `json:"body"`
	TabIDs []uuid.UUID `json:"tab_ids"`
	// Submit sends a new entry straight to review.
	Submit bool `json:"submit"`
}

// EntryService runs the entry moderation workflow:
// DRAFT -> PENDING -> APPROVED, with PENDING -> DRAFT on rejection.
type EntryService struct {
	repo    repository.EntryRepositoryIface
	tabRepo repository.TabRepositoryIface
	tabs    *TabService
	graph   *MembershipGraph
	authz   *AuthzService
	images  storage.ImageStore
	tx      repository.TransactorIface
	audit   audit.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewEntryService(
	repo repository.EntryRepositoryIface,
	tabRepo repository.TabRepositoryIface,
	tabs *TabService,
	graph *MembershipGraph,
	authz *AuthzService,
	images storage.ImageStore,
	tx repository.TransactorIface,
	auditLogger audit.Logger,
	m *metrics.Metrics,
) *EntryService {
	return &EntryService{
		repo:    repo,
		tabRepo: tabRepo,
		tabs:    tabs,
		graph:   graph,
		authz:   authz,
		images:  images,
		tx:      tx,
		audit:   auditLogger,
		metrics: m,
		now:     time.Now,
	}
}

// Create writes a new entry in the author's primary organization. Without
// tabs the entry is filed under the default tab.
func (s *EntryService) Create(ctx context.Context, actor *model.User, input EntryInput, uploads []ImageUpload) (*model.Entry, error) {
	org, err := s.graph.PrimaryOrg(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	input.Title = strings.TrimSpace(input.Title)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := checkUploads(s.images, "images", uploads); err != nil {
		return nil, err
	}

	tabs, err := s.resolveTabs(ctx, org.ID, actor.ID, input.TabIDs)
	if err != nil {
		return nil, err
	}

	entry := &model.Entry{
		OrganizationID: org.ID,
		AuthorID:       actor.ID,
		Title:          input.Title,
		Body:           input.Body,
		Status:         model.EntryDraft,
		Tabs:           tabs,
	}
	if input.Submit {
		now := s.now()
		entry.Status = model.EntryPending
		entry.SubmittedAt = &now
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, entry); err != nil {
			return err
		}
		return s.attachImages(ctx, entry, uploads)
	})
	if err != nil {
		return nil, err
	}

	s.recordTransition(ctx, actor.ID, entry, stateNew, entry.Status.String(), true)
	return entry, nil
}

// resolveTabs keeps only enabled tabs of the organization. Any unknown or
// disabled id fails validation; an empty selection yields the default tab.
func (s *EntryService) resolveTabs(ctx context.Context, orgID, actorID uuid.UUID, ids []uuid.UUID) ([]model.Tab, error) {
	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	if len(unique) == 0 {
		tab, err := s.tabs.EnsureDefault(ctx, orgID, actorID)
		if err != nil {
			return nil, err
		}
		return []model.Tab{*tab}, nil
	}

	tabs, err := s.tabRepo.FindEnabledByIDs(ctx, orgID, unique)
	if err != nil {
		return nil, err
	}
	if len(tabs) != len(unique) {
		return nil, fieldError("tab_ids", "Select a valid choice.")
	}
	return tabs, nil
}

// attachImages stores uploads and records them on entry. Stored objects are
// removed again when a later upload fails.
func (s *EntryService) attachImages(ctx context.Context, entry *model.Entry, uploads []ImageUpload) error {
	var stored []string
	for _, u := range uploads {
		key := model.EntryImageKey(entry.ID, uploadName(u))
		url, err := s.images.Put(ctx, key, u.ContentType, u.Body)
		if err != nil {
			removeObjects(ctx, s.images, stored)
			return fmt.Errorf("storing entry image: %w", err)
		}
		stored = append(stored, key)

		image := &model.EntryImage{
			EntryID:    entry.ID,
			StorageKey: key,
			URL:        url,
			Caption:    strings.TrimSpace(u.Caption),
		}
		if err := s.repo.AddImage(ctx, image); err != nil {
			removeObjects(ctx, s.images, stored)
			return err
		}
		entry.Images = append(entry.Images, *image)
	}
	return nil
}

// Update edits a draft: title and body are replaced, tabs are replaced and
// uploads are appended.
func (s *EntryService) Update(ctx context.Context, actor *model.User, id uuid.UUID, input EntryInput, uploads []ImageUpload) (*model.Entry, error) {
	entry, err := s.repo.FindForAuthor(ctx, id, actor.ID)
	if err != nil {
		return nil, err
	}
	if entry.Status != model.EntryDraft {
		return nil, domain.ErrEntryNotEditable
	}

	input.Title = strings.TrimSpace(input.Title)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := checkUploads(s.images, "images", uploads); err != nil {
		return nil, err
	}

	tabs, err := s.resolveTabs(ctx, entry.OrganizationID, actor.ID, input.TabIDs)
	if err != nil {
		return nil, err
	}

	entry.Title = input.Title
	entry.Body = input.Body

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		updated, err := s.repo.UpdateDraft(ctx, entry, tabs)
		if err != nil {
			return err
		}
		if !updated {
			return domain.ErrEntryNotEditable
		}
		return s.attachImages(ctx, entry, uploads)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, entry.ID)
}

// AddImages appends uploads to a draft.
func (s *EntryService) AddImages(ctx context.Context, actor *model.User, id uuid.UUID, uploads []ImageUpload) (*model.Entry, error) {
	if len(uploads) == 0 {
		return nil, fieldError("images", "This field is required.")
	}
	if err := checkUploads(s.images, "images", uploads); err != nil {
		return nil, err
	}

	entry, err := s.repo.FindForAuthor(ctx, id, actor.ID)
	if err != nil {
		return nil, err
	}
	if entry.Status != model.EntryDraft {
		return nil, domain.ErrEntryNotEditable
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		return s.attachImages(ctx, entry, uploads)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Submit sends the author's draft to review.
func (s *EntryService) Submit(ctx context.Context, actor *model.User, id uuid.UUID) (*TransitionResult, error) {
	entry, err := s.repo.FindForAuthor(ctx, id, actor.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return s.transition(ctx, actor, entry, model.EntryDraft, model.EntryPending, map[string]interface{}{
		"submitted_at": now,
	}, func(e *model.Entry) {
		e.SubmittedAt = &now
	})
}

// Reopen turns a legacy rejected entry back into a draft.
func (s *EntryService) Reopen(ctx context.Context, actor *model.User, id uuid.UUID) (*TransitionResult, error) {
	entry, err := s.repo.FindForAuthor(ctx, id, actor.ID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, actor, entry, model.EntryRejected, model.EntryDraft, nil, nil)
}

// Approve publishes a pending entry of the reviewer's organization.
func (s *EntryService) Approve(ctx context.Context, actor *model.User, id uuid.UUID) (*TransitionResult, error) {
	entry, err := s.forReview(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return s.transition(ctx, actor, entry, model.EntryPending, model.EntryApproved, map[string]interface{}{
		"approved_at":  now,
		"published_at": now,
		"reviewer_id":  actor.ID,
	}, func(e *model.Entry) {
		e.ApprovedAt = &now
		e.PublishedAt = &now
		e.ReviewerID = &actor.ID
	})
}

// Reject sends a pending entry back to its author as a draft. The original
// submission time is kept.
func (s *EntryService) Reject(ctx context.Context, actor *model.User, id uuid.UUID) (*TransitionResult, error) {
	entry, err := s.forReview(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	return s.transition(ctx, actor, entry, model.EntryPending, model.EntryDraft, map[string]interface{}{
		"reviewer_id": actor.ID,
	}, func(e *model.Entry) {
		e.ReviewerID = &actor.ID
	})
}

// forReview loads an entry of the actor's primary organization and checks
// the actor holds a moderator role there.
func (s *EntryService) forReview(ctx context.Context, actor *model.User, id uuid.UUID) (*model.Entry, error) {
	org, err := s.graph.PrimaryOrg(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNoOrganization) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}

	entry, err := s.repo.FindInOrg(ctx, id, org.ID)
	if err != nil {
		return nil, err
	}

	if actor.IsSuperuser {
		return entry, nil
	}
	role, err := s.graph.RoleOf(ctx, actor.ID, org.ID)
	if err != nil {
		return nil, err
	}
	if !role.IsModerator() {
		return nil, domain.ErrAuthorizationDenied
	}
	return entry, nil
}

func (s *EntryService) transition(
	ctx context.Context,
	actor *model.User,
	entry *model.Entry,
	from, to model.EntryStatus,
	fields map[string]interface{},
	apply func(*model.Entry),
) (*TransitionResult, error) {
	applied, err := s.repo.Transition(ctx, entry.ID, from, to, fields)
	if err != nil {
		return nil, err
	}

	s.recordTransition(ctx, actor.ID, entry, from.String(), to.String(), applied)
	if !applied {
		return &TransitionResult{Entry: entry, AlreadyHandled: true}, nil
	}

	entry.Status = to
	entry.UpdatedAt = s.now()
	if apply != nil {
		apply(entry)
	}
	return &TransitionResult{Entry: entry}, nil
}

// Delete removes the author's draft and its stored images.
func (s *EntryService) Delete(ctx context.Context, actor *model.User, id uuid.UUID) (*TransitionResult, error) {
	entry, err := s.repo.FindForAuthor(ctx, id, actor.ID)
	if err != nil {
		return nil, err
	}
	if entry.Status != model.EntryDraft {
		return nil, domain.ErrEntryNotEditable
	}

	deleted, err := s.repo.Delete(ctx, entry.ID, actor.ID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return &TransitionResult{Entry: entry, AlreadyHandled: true}, nil
	}

	keys := make([]string, 0, len(entry.Images))
	for _, img := range entry.Images {
		keys = append(keys, img.StorageKey)
	}
	removeObjects(ctx, s.images, keys)

	s.recordTransition(ctx, actor.ID, entry, entry.Status.String(), "deleted", true)
	return &TransitionResult{Entry: entry}, nil
}

// Feed lists approved entries of the actor's organization, newest first,
// optionally narrowed to one enabled tab.
func (s *EntryService) Feed(ctx context.Context, actor *model.User, tabSlug string, page Page) (*EntryPage, error) {
	org, err := s.graph.PrimaryOrg(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNoOrganization) {
			return &EntryPage{Entries: []model.Entry{}}, nil
		}
		return nil, err
	}

	page = page.normalized()
	return s.list(ctx, repository.EntryFilter{
		OrgID:   org.ID,
		Status:  model.EntryApproved,
		TabSlug: strings.TrimSpace(tabSlug),
		Offset:  page.Offset,
		Limit:   page.Limit,
	})
}

// Drafts lists the actor's own drafts.
func (s *EntryService) Drafts(ctx context.Context, actor *model.User, page Page) (*EntryPage, error) {
	page = page.normalized()
	return s.list(ctx, repository.EntryFilter{
		AuthorID: actor.ID,
		Status:   model.EntryDraft,
		Offset:   page.Offset,
		Limit:    page.Limit,
	})
}

// ReviewQueue lists pending entries of the moderator's organization.
func (s *EntryService) ReviewQueue(ctx context.Context, actor *model.User, page Page) (*EntryPage, error) {
	org, err := s.authz.RequireModerator(ctx, actor)
	if err != nil {
		return nil, err
	}

	page = page.normalized()
	return s.list(ctx, repository.EntryFilter{
		OrgID:  org.ID,
		Status: model.EntryPending,
		Offset: page.Offset,
		Limit:  page.Limit,
	})
}

func (s *EntryService) list(ctx context.Context, filter repository.EntryFilter) (*EntryPage, error) {
	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.Entry{}
	}
	return &EntryPage{Entries: entries, Total: total}, nil
}

// Get returns an entry of the actor's organization. Entries that are not
// approved are visible only to their author and to moderators.
func (s *EntryService) Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.Entry, error) {
	org, err := s.graph.PrimaryOrg(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNoOrganization) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}

	entry, err := s.repo.FindInOrg(ctx, id, org.ID)
	if err != nil {
		return nil, err
	}
	if entry.Status == model.EntryApproved || entry.AuthorID == actor.ID || actor.IsSuperuser {
		return entry, nil
	}

	role, err := s.graph.RoleOf(ctx, actor.ID, org.ID)
	if err != nil {
		return nil, err
	}
	if !role.IsModerator() {
		return nil, domain.ErrEntryNotFound
	}
	return entry, nil
}

func (s *EntryService) recordTransition(ctx context.Context, actorID uuid.UUID, entry *model.Entry, from, to string, applied bool) {
	if s.metrics != nil {
		result := metrics.ResultApplied
		if !applied {
			result = metrics.ResultAlreadyHandled
		}
		s.metrics.EntryTransitions.WithLabelValues(from, to, result).Inc()
	}
	if !applied {
		return
	}

	subject := model.Subject{Type: model.SubjectEntry, ID: entry.ID.String()}
	if err := s.audit.LogTransition(ctx, actorID, entry.OrganizationID, subject, from, to); err != nil {
		slog.WarnContext(ctx, "Failed to record entry transition", "entryID", entry.ID, "error", err)
	}
}

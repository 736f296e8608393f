package audit

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Ivnfdzz/PickNPlay-sub000/internal/catalog"
	"github.com/Ivnfdzz/PickNPlay-sub000/internal/users"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/config"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/db/models"
	pkgerrors "github.com/Ivnfdzz/PickNPlay-sub000/pkg/errors"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/enums"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/logger"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is the append-only audit trail. Record writes one entry per
// observed staff action; Query and Summarize read the trail back with
// display labels resolved against the live catalog and user tables.
type Service interface {
	Record(ctx context.Context, input RecordInput) (*models.AuditLogEntry, error)
	Query(ctx context.Context, filters QueryFilters) ([]EntryView, error)
	Summarize(ctx context.Context) (*Summary, error)
}

type service struct {
	repo     Repository
	users    users.Repository
	products catalog.ProductRepository
	cfg      config.AuditConfig
	logg     *logger.Logger
}

// NewService wires the audit recorder.
func NewService(repo Repository, usersRepo users.Repository, products catalog.ProductRepository, cfg config.AuditConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("audit repository required")
	}
	if usersRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if cfg.Window <= 0 {
		cfg.Window = 200
	}
	if cfg.RecentCount <= 0 {
		cfg.RecentCount = 10
	}
	return &service{repo: repo, users: usersRepo, products: products, cfg: cfg, logg: logg}, nil
}

func (s *service) Record(ctx context.Context, input RecordInput) (*models.AuditLogEntry, error) {
	if !input.Action.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("unknown audit action %q", input.Action))
	}
	if !input.TargetKind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("unknown target kind %q", input.TargetKind))
	}
	if input.ActorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor id required")
	}
	if input.TargetID == nil || *input.TargetID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "target id required")
	}

	// The actor must exist at record time. Once written, the entry is
	// kept even if the actor is later deleted.
	if _, err := s.users.FindByID(ctx, input.ActorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "audit actor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load audit actor")
	}

	entry := &models.AuditLogEntry{
		ID:         uuid.New(),
		ActorID:    input.ActorID,
		Action:     input.Action,
		TargetKind: input.TargetKind,
		TargetID:   input.TargetID,
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert audit entry")
	}
	return entry, nil
}

func (s *service) Query(ctx context.Context, filters QueryFilters) ([]EntryView, error) {
	if filters.Action != nil && !filters.Action.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("unknown audit action %q", *filters.Action))
	}
	if filters.TargetKind != nil && !filters.TargetKind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("unknown target kind %q", *filters.TargetKind))
	}

	entries, err := s.repo.Query(ctx, filters, pagination.NormalizeLimit(filters.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "query audit entries")
	}
	return s.viewsFor(ctx, entries), nil
}

func (s *service) Summarize(ctx context.Context) (*Summary, error) {
	entries, err := s.repo.Recent(ctx, s.cfg.Window)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recent audit entries")
	}

	labels := newLabelCache(s.users, s.products)

	byAction := make(map[string]int)
	byKind := make(map[string]int)
	actorCounts := make(map[uuid.UUID]int)
	for _, entry := range entries {
		byAction[entry.Action.String()]++
		byKind[entry.TargetKind.String()]++
		actorCounts[entry.ActorID]++
	}

	byActor := make([]ActorCount, 0, len(actorCounts))
	for actorID, count := range actorCounts {
		byActor = append(byActor, ActorCount{
			ActorID: actorID,
			Label:   labels.actor(ctx, actorID),
			Count:   count,
		})
	}
	sort.Slice(byActor, func(i, j int) bool {
		if byActor[i].Count != byActor[j].Count {
			return byActor[i].Count > byActor[j].Count
		}
		return byActor[i].Label < byActor[j].Label
	})

	recent := entries
	if len(recent) > s.cfg.RecentCount {
		recent = recent[:s.cfg.RecentCount]
	}

	return &Summary{
		Window:       s.cfg.Window,
		TotalEntries: len(entries),
		ByAction:     byAction,
		ByTargetKind: byKind,
		ByActor:      byActor,
		Recent:       s.viewsWith(ctx, labels, recent),
	}, nil
}

func (s *service) viewsFor(ctx context.Context, entries []models.AuditLogEntry) []EntryView {
	return s.viewsWith(ctx, newLabelCache(s.users, s.products), entries)
}

func (s *service) viewsWith(ctx context.Context, labels *labelCache, entries []models.AuditLogEntry) []EntryView {
	views := make([]EntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, EntryView{
			ID:          entry.ID,
			ActorID:     entry.ActorID,
			ActorLabel:  labels.actor(ctx, entry.ActorID),
			Action:      entry.Action,
			TargetKind:  entry.TargetKind,
			TargetID:    entry.TargetID,
			TargetLabel: labels.target(ctx, entry.TargetKind, entry.TargetID),
			CreatedAt:   entry.CreatedAt,
		})
	}
	return views
}

// labelCache memoizes display lookups within a single read so repeated
// actors and targets cost one query each.
type labelCache struct {
	users    users.Repository
	products catalog.ProductRepository
	actors   map[uuid.UUID]string
	targets  map[uuid.UUID]string
}

func newLabelCache(usersRepo users.Repository, products catalog.ProductRepository) *labelCache {
	return &labelCache{
		users:    usersRepo,
		products: products,
		actors:   make(map[uuid.UUID]string),
		targets:  make(map[uuid.UUID]string),
	}
}

func (c *labelCache) actor(ctx context.Context, id uuid.UUID) string {
	if label, ok := c.actors[id]; ok {
		return label
	}
	label := fmt.Sprintf("deleted user #%s", id)
	if user, err := c.users.FindByID(ctx, id); err == nil {
		label = user.Username
	}
	c.actors[id] = label
	return label
}

func (c *labelCache) target(ctx context.Context, kind enums.EntityKind, id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	if label, ok := c.targets[*id]; ok {
		return label
	}

	var label string
	switch kind {
	case enums.EntityProduct:
		label = fmt.Sprintf("deleted product #%s", *id)
		if product, err := c.products.FindByID(ctx, *id); err == nil {
			label = product.Name
		}
	case enums.EntityUser:
		label = fmt.Sprintf("deleted user #%s", *id)
		if user, err := c.users.FindByID(ctx, *id); err == nil {
			label = user.Username
		}
	default:
		label = fmt.Sprintf("%s #%s", kind, *id)
	}
	c.targets[*id] = label
	return label
}

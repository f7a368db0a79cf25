// Package menu stores the side menu, a forest of depth two built on the
// ordered collection repository.
package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/AppShell-Admin/AppShell-Admin/internal/db/controller/collection"
	"github.com/AppShell-Admin/AppShell-Admin/internal/db/models"
)

const parentField = "parent_id"

// ErrHasDependents is returned when deleting a menu that still has children.
var ErrHasDependents = errors.New("menu has children, delete them first")

// Node is a top-level menu with its children attached.
type Node struct {
	models.Menu
	Children []models.Menu
}

// Store manages menus. It embeds the generic repository and overrides the
// operations that need hierarchy checks.
type Store struct {
	*collection.Repository[models.Menu, *models.Menu]

	db *gorm.DB
}

// NewStore creates a menu Store.
func NewStore(db *gorm.DB, images collection.ImageDeleter) *Store {
	return &Store{
		Repository: collection.New[models.Menu](db, images),
		db:         db,
	}
}

// Children returns the children of parentID ordered by sort_order, id.
func (s *Store) Children(ctx context.Context, parentID uint64) ([]models.Menu, error) {
	if s.db == nil {
		return nil, collection.ErrDBNil
	}

	var items []models.Menu
	if err := s.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("sort_order ASC").Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("%w: menu children of %d: %w", collection.ErrStorage, parentID, err)
	}

	return items, nil
}

// Parents returns every top-level menu, the valid parent candidates.
func (s *Store) Parents(ctx context.Context) ([]models.Menu, error) {
	if s.db == nil {
		return nil, collection.ErrDBNil
	}

	var items []models.Menu
	if err := s.db.WithContext(ctx).
		Where("parent_id IS NULL").
		Order("sort_order ASC").Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("%w: menu parents: %w", collection.ErrStorage, err)
	}

	return items, nil
}

// ChildCounts returns the number of children per parent id.
func (s *Store) ChildCounts(ctx context.Context) (map[uint64]int, error) {
	if s.db == nil {
		return nil, collection.ErrDBNil
	}

	var rows []struct {
		ParentID uint64
		Total    int
	}

	if err := s.db.WithContext(ctx).Model(&models.Menu{}).
		Select("parent_id, COUNT(*) AS total").
		Where("parent_id IS NOT NULL").
		Group("parent_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: menu child counts: %w", collection.ErrStorage, err)
	}

	out := make(map[uint64]int, len(rows))
	for _, r := range rows {
		out[r.ParentID] = r.Total
	}

	return out, nil
}

// Tree returns the active menu forest. Active menus are loaded once and
// grouped by parent id; children of inactive parents are dropped.
func (s *Store) Tree(ctx context.Context) ([]Node, error) {
	items, err := s.Active(ctx, nil)
	if err != nil {
		return nil, err
	}

	children := make(map[uint64][]models.Menu)

	var roots []models.Menu

	for _, m := range items {
		if m.ParentID == nil {
			roots = append(roots, m)
			continue
		}

		children[*m.ParentID] = append(children[*m.ParentID], m)
	}

	tree := make([]Node, 0, len(roots))
	for _, r := range roots {
		tree = append(tree, Node{Menu: r, Children: children[r.ID]})
	}

	return tree, nil
}

// Create validates the parent and stores m. Sort order is scoped to the siblings.
func (s *Store) Create(ctx context.Context, m *models.Menu) error {
	if err := s.Validate(m); err != nil {
		return err
	}

	if err := s.checkParent(ctx, 0, m.ParentID); err != nil {
		return err
	}

	if m.SortOrder == 0 {
		// one sequence across the whole table, parents and children alike
		next, err := s.NextSortOrder(ctx, nil)
		if err != nil {
			return err
		}

		m.SortOrder = next
	}

	return s.Repository.Create(ctx, m)
}

// Update validates the parent and replaces menu id with m.
func (s *Store) Update(ctx context.Context, id uint64, m *models.Menu) (*models.Menu, error) {
	if err := s.Validate(m); err != nil {
		return nil, err
	}

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if err := s.checkParent(ctx, id, m.ParentID); err != nil {
		return nil, err
	}

	return s.Repository.Update(ctx, id, m)
}

// Delete removes menu id, refusing while it still has children.
func (s *Store) Delete(ctx context.Context, id uint64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	children, err := s.Children(ctx, id)
	if err != nil {
		return err
	}

	if len(children) > 0 {
		log.Debug().Uint64("id", id).Int("children", len(children)).Msg("menu delete blocked")

		return ErrHasDependents
	}

	return s.Repository.Delete(ctx, id)
}

// checkParent enforces the two level hierarchy for menu id (0 on create).
func (s *Store) checkParent(ctx context.Context, id uint64, parentID *uint64) error {
	if parentID == nil {
		return nil
	}

	if id != 0 && *parentID == id {
		return collection.NewValidationError(parentField, "cannot be the menu itself")
	}

	parent, err := s.Get(ctx, *parentID)
	if err != nil {
		if errors.Is(err, collection.ErrNotFound) {
			return collection.NewValidationError(parentField, "does not exist")
		}

		return err
	}

	if !parent.IsTopLevel() {
		return collection.NewValidationError(parentField, "must be a top-level menu")
	}

	if id == 0 {
		return nil
	}

	children, err := s.Children(ctx, id)
	if err != nil {
		return err
	}

	if len(children) > 0 {
		return collection.NewValidationError(parentField, "a menu with children cannot have a parent")
	}

	return nil
}

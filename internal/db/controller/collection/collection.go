// Package collection implements the generic repository behind every ordered
// app shell entity (walkthrough screens, tabs, pages, floating buttons and
// navigation icons). Menus build on it in package menu.
package collection

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/AppShell-Admin/AppShell-Admin/internal/db/models"
)

const (
	// DefaultPageSize for pagination.
	DefaultPageSize = 25
	// MaxPageSize clamps the page size upper bound.
	MaxPageSize = 100

	// SortAsc orders ascending.
	SortAsc = "asc"
	// SortDesc orders descending.
	SortDesc = "desc"

	defaultSortColumn = "sort_order"
)

// sortable lists the columns a caller may order by.
var sortable = map[string]struct{}{ //nolint:gochecknoglobals
	"id":         {},
	"title":      {},
	"sort_order": {},
	"is_active":  {},
	"created_at": {},
	"updated_at": {},
}

// Entity is implemented by pointers to models embedding models.Ordered.
type Entity[T any] interface {
	*T
	Base() *models.Ordered
	SortScope() map[string]any
	SearchColumns() []string
}

// ImageDeleter removes stored images. Implemented by the upload service.
type ImageDeleter interface {
	DeleteFile(ref string) error
}

// Query describes a paginated admin listing.
type Query struct {
	Search    string
	Sort      string
	Direction string
	Page      int
	PageSize  int
	// Where adds equality filters, e.g. {"position": "left"} or {"parent_id": nil}.
	Where map[string]any
}

// Page is one page of a listing.
type Page[T any] struct {
	Items      []T
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

// HasPrev reports whether a previous page exists.
func (p *Page[T]) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether a next page exists.
func (p *Page[T]) HasNext() bool {
	return p.Page < p.TotalPages
}

// Repository provides CRUD, ordering and activation for one entity type.
type Repository[T any, P Entity[T]] struct {
	db        *gorm.DB
	images    ImageDeleter
	validator *validator.Validate
	name      string
}

// New creates a Repository. images may be nil when no files are stored.
func New[T any, P Entity[T]](db *gorm.DB, images ImageDeleter) *Repository[T, P] {
	return &Repository[T, P]{
		db:        db,
		images:    images,
		validator: NewValidator(),
		name:      strings.TrimPrefix(fmt.Sprintf("%T", *new(T)), "models."),
	}
}

// Name returns the entity name used in logs and errors.
func (r *Repository[T, P]) Name() string {
	return r.name
}

// Validator returns the validator used for create and update.
func (r *Repository[T, P]) Validator() *validator.Validate {
	return r.validator
}

func (r *Repository[T, P]) tx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, ErrDBNil
	}

	return r.db.WithContext(ctx), nil
}

// List returns one page of entities matching q.
func (r *Repository[T, P]) List(ctx context.Context, q Query) (*Page[T], error) {
	db, err := r.tx(ctx)
	if err != nil {
		return nil, err
	}

	pageSize := q.PageSize
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}

	page := q.Page
	if page < 1 {
		page = 1
	}

	tx := db.Model(new(T))
	for column, value := range q.Where {
		if value == nil {
			tx = tx.Where(column + " IS NULL")
			continue
		}

		tx = tx.Where(column+" = ?", value)
	}

	if q.Search != "" {
		clause, args := searchClause(P(new(T)).SearchColumns(), q.Search)
		tx = tx.Where(clause, args...)
	}

	var total int64
	if err = tx.Count(&total).Error; err != nil {
		return nil, storageError("count", r.name, err)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}

	if page > totalPages {
		page = totalPages
	}

	var items []T
	if err = tx.Order(orderClause(q.Sort, q.Direction)).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&items).Error; err != nil {
		return nil, storageError("list", r.name, err)
	}

	return &Page[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// likeEscape is portable across mysql, postgres and sqlite, unlike a backslash.
const likeEscape = "!"

var likeEscaper = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_") //nolint:gochecknoglobals

// searchClause builds a case-insensitive substring match OR-ed across columns.
// Wildcards typed by the operator match literally.
func searchClause(columns []string, search string) (string, []any) {
	like := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"

	parts := make([]string, len(columns))
	args := make([]any, len(columns))

	for i, c := range columns {
		parts[i] = "LOWER(" + c + ") LIKE ? ESCAPE '" + likeEscape + "'"
		args[i] = like
	}

	return "(" + strings.Join(parts, " OR ") + ")", args
}

// orderClause returns a safe ORDER BY with id as the stable tie breaker.
func orderClause(column, direction string) string {
	if _, ok := sortable[column]; !ok {
		column = defaultSortColumn
	}

	direction = strings.ToLower(direction)
	if direction != SortDesc {
		direction = SortAsc
	}

	if column == "id" {
		return "id " + direction
	}

	return column + " " + direction + ", id " + direction
}

// Get returns the entity with the given id.
func (r *Repository[T, P]) Get(ctx context.Context, id uint64) (P, error) {
	db, err := r.tx(ctx)
	if err != nil {
		return nil, err
	}

	item := P(new(T))
	if err = db.First(item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, storageError("get", r.name, err)
	}

	return item, nil
}

// Active returns active entities ordered by sort_order then id.
// where narrows the result, e.g. to one navigation icon position.
func (r *Repository[T, P]) Active(ctx context.Context, where map[string]any) ([]T, error) {
	db, err := r.tx(ctx)
	if err != nil {
		return nil, err
	}

	tx := db.Where("is_active = ?", true)
	if len(where) > 0 {
		tx = tx.Where(where)
	}

	var items []T
	if err = tx.Order("sort_order ASC").Order("id ASC").Find(&items).Error; err != nil {
		return nil, storageError("list active", r.name, err)
	}

	return items, nil
}

// NextSortOrder returns max(sort_order)+1 within scope.
// It reads without locking: concurrent creates may receive the same value.
func (r *Repository[T, P]) NextSortOrder(ctx context.Context, scope map[string]any) (int, error) {
	db, err := r.tx(ctx)
	if err != nil {
		return 0, err
	}

	var current int

	tx := db.Model(new(T))
	if len(scope) > 0 {
		tx = tx.Where(scope)
	}

	if err = tx.Select("COALESCE(MAX(sort_order), 0)").Scan(&current).Error; err != nil {
		return 0, storageError("max sort_order", r.name, err)
	}

	return current + 1, nil
}

// Validate checks the validate tags of item.
func (r *Repository[T, P]) Validate(item P) error {
	return ValidateStruct(r.validator, item)
}

// Create validates and stores item. A zero sort order appends it to the end of its scope.
func (r *Repository[T, P]) Create(ctx context.Context, item P) error {
	db, err := r.tx(ctx)
	if err != nil {
		return err
	}

	if err = r.Validate(item); err != nil {
		return err
	}

	base := item.Base()
	base.ID = 0

	if base.SortOrder == 0 {
		if base.SortOrder, err = r.NextSortOrder(ctx, item.SortScope()); err != nil {
			return err
		}
	}

	if err = db.Create(item).Error; err != nil {
		return storageError("create", r.name, err)
	}

	log.Debug().Str("entity", r.name).Uint64("id", base.ID).Int("sort_order", base.SortOrder).Msg("created")

	return nil
}

// Update replaces every column of entity id with item.
// A zero sort order keeps the stored position; a replaced image is removed best effort.
func (r *Repository[T, P]) Update(ctx context.Context, id uint64, item P) (P, error) {
	db, err := r.tx(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = r.Validate(item); err != nil {
		return nil, err
	}

	old := existing.Base()
	base := item.Base()
	base.ID = old.ID
	base.CreatedAt = old.CreatedAt

	if base.SortOrder == 0 {
		base.SortOrder = old.SortOrder
	}

	if err = db.Save(item).Error; err != nil {
		return nil, storageError("update", r.name, err)
	}

	if old.Image != "" && old.Image != base.Image {
		r.deleteImage(old.Image, id)
	}

	return item, nil
}

// ToggleActive flips is_active of entity id.
func (r *Repository[T, P]) ToggleActive(ctx context.Context, id uint64) (P, error) {
	db, err := r.tx(ctx)
	if err != nil {
		return nil, err
	}

	item, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	base := item.Base()
	base.IsActive = !base.IsActive

	if err = db.Model(item).Update("is_active", base.IsActive).Error; err != nil {
		return nil, storageError("toggle", r.name, err)
	}

	return item, nil
}

// Delete removes entity id. Its image is deleted first; a failure there is
// logged and the row is removed anyway.
func (r *Repository[T, P]) Delete(ctx context.Context, id uint64) error {
	db, err := r.tx(ctx)
	if err != nil {
		return err
	}

	item, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	if ref := item.Base().Image; ref != "" {
		r.deleteImage(ref, id)
	}

	result := db.Delete(new(T), id)
	if result.Error != nil {
		return storageError("delete", r.name, result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Count returns the number of stored entities.
func (r *Repository[T, P]) Count(ctx context.Context) (int64, error) {
	db, err := r.tx(ctx)
	if err != nil {
		return 0, err
	}

	var n int64
	if err = db.Model(new(T)).Count(&n).Error; err != nil {
		return 0, storageError("count", r.name, err)
	}

	return n, nil
}

func (r *Repository[T, P]) deleteImage(ref string, id uint64) {
	if r.images == nil {
		return
	}

	if err := r.images.DeleteFile(ref); err != nil {
		log.Warn().Err(err).Str("entity", r.name).Uint64("id", id).Str("image", ref).
			Msg("failed to delete image, continuing")
	}
}

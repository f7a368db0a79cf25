package content

import (
	"context"
	"mime/multipart"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/AppShell-Admin/AppShell-Admin/internal/db/controller/collection"
	"github.com/AppShell-Admin/AppShell-Admin/internal/upload"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/handler"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/navigation"
)

const (
	// ListTemplate renders the paginated table of a resource.
	ListTemplate = "admin/content/list"
	// FormTemplate renders the create and edit form of a resource.
	FormTemplate = "admin/content/form"

	// ImageField is the multipart field carrying an uploaded image.
	ImageField = "image"
	// RemoveImageField clears the stored image when set to "true".
	RemoveImageField = "remove_image"

	// BasePath prefixes every resource path.
	BasePath = handler.RootPath + "admin/"
)

// Store is the persistence contract of a resource. It is implemented by
// collection.Repository and menu.Store.
type Store[T any, P collection.Entity[T]] interface {
	List(ctx context.Context, q collection.Query) (*collection.Page[T], error)
	Get(ctx context.Context, id uint64) (P, error)
	Create(ctx context.Context, item P) error
	Update(ctx context.Context, id uint64, item P) (P, error)
	ToggleActive(ctx context.Context, id uint64) (P, error)
	Delete(ctx context.Context, id uint64) error
}

// Images stores uploaded images. Implemented by upload.Service.
type Images interface {
	UploadImage(fh *multipart.FileHeader, dir string) (string, error)
	DeleteFile(ref string) error
	URL(ref string) *string
}

// Row is one line of a list page.
type Row struct {
	ID        uint64
	Title     string
	SortOrder int
	IsActive  bool
	Image     *string
	Cells     []string
	Note      string
}

// Pager holds pagination data of a list page.
type Pager struct {
	Page       int
	PageSize   int
	Total      int64
	TotalPages int
	HasPrev    bool
	HasNext    bool
	PrevPage   int
	NextPage   int
}

// ListQuery echoes the list parameters back to the template.
type ListQuery struct {
	Search    string
	Sort      string
	Direction string
	Filters   map[string]string
}

// Meta describes a resource to the templates.
type Meta struct {
	Name     string
	Title    string
	Singular string
	Path     string
	HasImage bool
	Filters  []handler.Field
}

// Resource serves the admin pages of one ordered entity type.
type Resource[T any, P collection.Entity[T]] struct {
	// Name is the url segment, e.g. "floating-button".
	Name     string
	Title    string
	Singular string
	// ImageDir enables image uploads below this directory when not empty.
	ImageDir string
	// Fields are the form inputs, Columns the extra list columns.
	Fields  []handler.Field
	Columns []handler.Field
	// Filters are select fields narrowing the list by equality.
	Filters []handler.Field

	Store   Store[T, P]
	Images  Images
	DevMode bool

	// Bind reads form values the body parser cannot map onto item.
	Bind func(c *fiber.Ctx, item P) error
	// Options fills select options that depend on stored data.
	Options func(ctx context.Context, item P) (map[string][]handler.Option, error)
	// Annotate adjusts list rows, e.g. to show parent titles.
	Annotate func(ctx context.Context, items []T, rows []Row) error
}

// Path returns the list path of the resource.
func (r *Resource[T, P]) Path() string {
	return BasePath + r.Name
}

// Register mounts the resource routes behind guard.
func (r *Resource[T, P]) Register(app *fiber.App, guard fiber.Handler) {
	app.Route(r.Path(), func(router fiber.Router) {
		router.Use(guard)
		router.Get(handler.RouterRootPath, r.List)
		router.Get("/new", r.New)
		router.Post(handler.RouterRootPath, r.Create)
		router.Get("/:id/edit", r.Edit)
		router.Post("/:id", r.Update)
		router.Post("/:id/toggle", r.Toggle)
		router.Post("/:id/delete", r.Delete)
	})
}

func (r *Resource[T, P]) meta() Meta {
	return Meta{
		Name:     r.Name,
		Title:    r.Title,
		Singular: r.Singular,
		Path:     r.Path(),
		HasImage: r.ImageDir != "",
		Filters:  r.Filters,
	}
}

func (r *Resource[T, P]) nav(page string) *navigation.Context {
	nav := navigation.NewAdminContext(r.Title, r.Name)

	if page == "" {
		return nav.AddBreadcrumb(r.Title, r.Path(), true)
	}

	return nav.AddBreadcrumb(r.Title, r.Path(), false).AddBreadcrumb(page, "", true)
}

// List renders one page of items.
func (r *Resource[T, P]) List(c *fiber.Ctx) error {
	lq := ListQuery{
		Search:    c.Query("search"),
		Sort:      c.Query("sort"),
		Direction: c.Query("dir"),
		Filters:   make(map[string]string, len(r.Filters)),
	}

	q := collection.Query{
		Search:    lq.Search,
		Sort:      lq.Sort,
		Direction: lq.Direction,
		Page:      c.QueryInt("page", 1),
		PageSize:  c.QueryInt("pageSize", collection.DefaultPageSize),
		Where:     make(map[string]any, len(r.Filters)),
	}

	for _, f := range r.Filters {
		if v := c.Query(f.Name); v != "" {
			lq.Filters[f.Name] = v
			q.Where[f.Name] = v
		}
	}

	page, err := r.Store.List(c.UserContext(), q)
	if err != nil {
		return r.pageError(c, err)
	}

	if handler.WantsJSON(c) {
		return c.JSON(handler.Envelope{Success: true, Data: fiber.Map{
			"items":       page.Items,
			"total":       page.Total,
			"page":        page.Page,
			"page_size":   page.PageSize,
			"total_pages": page.TotalPages,
		}})
	}

	rows := r.rows(page.Items)
	if r.Annotate != nil {
		if err = r.Annotate(c.UserContext(), page.Items, rows); err != nil {
			return r.pageError(c, err)
		}
	}

	data := handler.Flash(c)
	data["Navigation"] = r.nav("")
	data["Resource"] = r.meta()
	data["Columns"] = r.Columns
	data["Rows"] = rows
	data["Query"] = lq
	data["Pager"] = Pager{
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		HasPrev:    page.HasPrev(),
		HasNext:    page.HasNext(),
		PrevPage:   page.Page - 1,
		NextPage:   page.Page + 1,
	}

	return c.Render(ListTemplate, data, handler.BaseLayout)
}

func (r *Resource[T, P]) rows(items []T) []Row {
	rows := make([]Row, len(items))

	for i := range items {
		base := P(&items[i]).Base()

		row := Row{
			ID:        base.ID,
			Title:     base.Title,
			SortOrder: base.SortOrder,
			IsActive:  base.IsActive,
			Cells:     make([]string, len(r.Columns)),
		}

		if r.Images != nil {
			row.Image = r.Images.URL(base.Image)
		}

		for j, col := range r.Columns {
			row.Cells[j] = handler.Display(handler.FieldValue(&items[i], col.Name))
		}

		rows[i] = row
	}

	return rows
}

// New renders an empty form.
func (r *Resource[T, P]) New(c *fiber.Ctx) error {
	item := P(new(T))
	item.Base().IsActive = true

	return r.renderForm(c, fiber.StatusOK, item, nil)
}

// Edit renders the form of an existing item.
func (r *Resource[T, P]) Edit(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return r.pageError(c, err)
	}

	item, err := r.Store.Get(c.UserContext(), id)
	if err != nil {
		return r.pageError(c, err)
	}

	return r.renderForm(c, fiber.StatusOK, item, nil)
}

func (r *Resource[T, P]) renderForm(c *fiber.Ctx, status int, item P, errs map[string]string) error {
	fields := r.Fields

	if r.Options != nil {
		options, err := r.Options(c.UserContext(), item)
		if err != nil {
			return r.pageError(c, err)
		}

		fields = withOptions(fields, options)
	}

	base := item.Base()
	isNew := base.ID == 0

	action := r.Path()
	title := "New " + r.Singular

	if !isNew {
		action = r.Path() + "/" + strconv.FormatUint(base.ID, 10)
		title = "Edit " + r.Singular
	}

	var image *string
	if r.Images != nil {
		image = r.Images.URL(base.Image)
	}

	data := handler.Flash(c)
	data["Navigation"] = r.nav(title)
	data["Resource"] = r.meta()
	data["FormTitle"] = title
	data["Action"] = action
	data["IsNew"] = isNew
	data["Item"] = item
	data["ImageURL"] = image
	data["Fields"] = handler.FormFields(fields, item, errs)
	data["Errors"] = errs

	return c.Status(status).Render(FormTemplate, data, handler.BaseLayout)
}

func withOptions(fields []handler.Field, options map[string][]handler.Option) []handler.Field {
	out := make([]handler.Field, len(fields))
	copy(out, fields)

	for i := range out {
		if opts, ok := options[out[i].Name]; ok {
			out[i].Options = opts
		}
	}

	return out
}

// bind parses the form into a new item.
func (r *Resource[T, P]) bind(c *fiber.Ctx) (P, error) {
	item := P(new(T))

	if err := c.BodyParser(item); err != nil {
		log.Debug().Err(err).Str("resource", r.Name).Msg("failed to parse form")
		return item, collection.NewValidationError("form", "could not be parsed")
	}

	if r.Bind != nil {
		if err := r.Bind(c, item); err != nil {
			return item, err
		}
	}

	return item, nil
}

// uploadImage stores the image of the request, if any, and returns its reference.
func (r *Resource[T, P]) uploadImage(c *fiber.Ctx) (string, error) {
	if r.ImageDir == "" || r.Images == nil {
		return "", nil
	}

	fh, err := c.FormFile(ImageField)
	if err != nil || fh == nil || fh.Size == 0 {
		// no file chosen
		return "", nil //nolint:nilerr
	}

	ref, err := r.Images.UploadImage(fh, r.ImageDir)
	if err != nil {
		if reason := upload.Rejection(err); reason != nil {
			return "", collection.NewValidationError(ImageField, reason.Error())
		}

		return "", err
	}

	return ref, nil
}

// discard removes an image stored for a request that failed.
func (r *Resource[T, P]) discard(ref string) {
	if ref == "" {
		return
	}

	if err := r.Images.DeleteFile(ref); err != nil {
		log.Warn().Err(err).Str("resource", r.Name).Str("image", ref).Msg("failed to remove orphaned upload")
	}
}

// Create stores a new item.
func (r *Resource[T, P]) Create(c *fiber.Ctx) error {
	item, err := r.bind(c)
	if err != nil {
		return r.formError(c, item, err)
	}

	ref, err := r.uploadImage(c)
	if err != nil {
		return r.formError(c, item, err)
	}

	item.Base().Image = ref

	if err = r.Store.Create(c.UserContext(), item); err != nil {
		r.discard(ref)
		item.Base().ID = 0
		item.Base().Image = ""

		return r.formError(c, item, err)
	}

	log.Info().Str("resource", r.Name).Uint64("id", item.Base().ID).Msg("created")

	if handler.WantsJSON(c) {
		return c.Status(fiber.StatusCreated).JSON(handler.Envelope{Success: true, Data: item})
	}

	return r.done(c, r.Singular+" created")
}

// Update replaces an existing item. The stored image is kept unless a new
// one is uploaded or removal is requested.
func (r *Resource[T, P]) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return r.pageError(c, err)
	}

	existing, err := r.Store.Get(c.UserContext(), id)
	if err != nil {
		return r.pageError(c, err)
	}

	item, err := r.bind(c)
	item.Base().ID = id
	item.Base().Image = existing.Base().Image

	if err != nil {
		return r.formError(c, item, err)
	}

	if c.FormValue(RemoveImageField) == "true" {
		item.Base().Image = ""
	}

	ref, err := r.uploadImage(c)
	if err != nil {
		return r.formError(c, item, err)
	}

	if ref != "" {
		item.Base().Image = ref
	}

	updated, err := r.Store.Update(c.UserContext(), id, item)
	if err != nil {
		r.discard(ref)

		if ref != "" {
			item.Base().Image = existing.Base().Image
		}

		return r.formError(c, item, err)
	}

	log.Info().Str("resource", r.Name).Uint64("id", id).Msg("updated")

	if handler.WantsJSON(c) {
		return c.JSON(handler.Envelope{Success: true, Data: updated})
	}

	return r.done(c, r.Singular+" updated")
}

// Toggle flips the active flag of an item.
func (r *Resource[T, P]) Toggle(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return r.actionError(c, err)
	}

	item, err := r.Store.ToggleActive(c.UserContext(), id)
	if err != nil {
		return r.actionError(c, err)
	}

	if handler.WantsJSON(c) {
		return c.JSON(handler.Envelope{Success: true, Data: item})
	}

	state := "deactivated"
	if item.Base().IsActive {
		state = "activated"
	}

	return r.done(c, r.Singular+" "+state)
}

// Delete removes an item.
func (r *Resource[T, P]) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return r.actionError(c, err)
	}

	if err = r.Store.Delete(c.UserContext(), id); err != nil {
		return r.actionError(c, err)
	}

	log.Info().Str("resource", r.Name).Uint64("id", id).Msg("deleted")

	if handler.WantsJSON(c) {
		return c.JSON(handler.Envelope{Success: true, Message: r.Singular + " deleted"})
	}

	return r.done(c, r.Singular+" deleted")
}

func (r *Resource[T, P]) done(c *fiber.Ctx, notice string) error {
	return c.Redirect(r.Path() + "?" + handler.NoticeQuery + "=" + url.QueryEscape(notice))
}

func (r *Resource[T, P]) logFailure(c *fiber.Ctx, err error) {
	if handler.StatusFor(err) == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("resource", r.Name).Str("path", c.Path()).Msg("request failed")
	}
}

// formError re-renders the form with field messages for validation errors.
func (r *Resource[T, P]) formError(c *fiber.Ctx, item P, err error) error {
	r.logFailure(c, err)

	if handler.WantsJSON(c) {
		return handler.JSONError(c, err, r.DevMode)
	}

	ve, ok := collection.AsValidationError(err)
	if !ok {
		return r.pageError(c, err)
	}

	return r.renderForm(c, fiber.StatusBadRequest, item, ve.Fields)
}

// actionError sends list actions back to the list with a message.
func (r *Resource[T, P]) actionError(c *fiber.Ctx, err error) error {
	r.logFailure(c, err)

	if handler.WantsJSON(c) {
		return handler.JSONError(c, err, r.DevMode)
	}

	return c.Redirect(r.Path() + "?" + handler.ErrorQuery + "=" + url.QueryEscape(handler.UserMessage(err)))
}

func (r *Resource[T, P]) pageError(c *fiber.Ctx, err error) error {
	r.logFailure(c, err)

	if handler.WantsJSON(c) {
		return handler.JSONError(c, err, r.DevMode)
	}

	return c.Status(handler.StatusFor(err)).SendString(handler.UserMessage(err))
}

func parseID(c *fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, collection.ErrNotFound
	}

	return id, nil
}

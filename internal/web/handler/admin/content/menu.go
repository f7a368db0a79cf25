package content

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/AppShell-Admin/AppShell-Admin/internal/appshell"
	"github.com/AppShell-Admin/AppShell-Admin/internal/db/controller/collection"
	"github.com/AppShell-Admin/AppShell-Admin/internal/db/controller/menu"
	"github.com/AppShell-Admin/AppShell-Admin/internal/db/models"
	"github.com/AppShell-Admin/AppShell-Admin/internal/web/handler"
)

const parentField = "parent_id"

// menuPages adds parent handling to the menu resource.
type menuPages struct {
	store *menu.Store
}

// Menus returns the side menu resource.
func Menus(shell *appshell.Shell, devMode bool) *Resource[models.Menu, *models.Menu] {
	m := menuPages{store: shell.Menus}

	return &Resource[models.Menu, *models.Menu]{
		Name:     "menu",
		Title:    "Menus",
		Singular: "Menu",
		ImageDir: "menus",
		Fields: []handler.Field{
			titleField,
			{
				Name: parentField, Label: "Parent", Type: handler.FieldSelect,
				Help: "Menus nest one level deep. A menu with children stays top level.",
			},
			{Name: "url", Label: "URL", Type: handler.FieldURL},
			sortField,
			activeField,
		},
		Columns:  []handler.Field{{Name: parentField, Label: "Parent"}, {Name: "url", Label: "URL"}},
		Store:    shell.Menus,
		Images:   shell.Uploads,
		DevMode:  devMode,
		Bind:     m.bind,
		Options:  m.options,
		Annotate: m.annotate,
	}
}

// bind reads the parent select, empty meaning top level.
func (m menuPages) bind(c *fiber.Ctx, item *models.Menu) error {
	raw := strings.TrimSpace(c.FormValue(parentField))
	if raw == "" {
		item.ParentID = nil
		return nil
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return collection.NewValidationError(parentField, "must reference an existing menu")
	}

	item.ParentID = &id

	return nil
}

// options lists the top level menus an item may be nested under.
func (m menuPages) options(ctx context.Context, item *models.Menu) (map[string][]handler.Option, error) {
	parents, err := m.store.Parents(ctx)
	if err != nil {
		return nil, err
	}

	opts := make([]handler.Option, 0, len(parents)+1)
	opts = append(opts, handler.Option{Value: "", Label: "None (top level)"})

	for _, p := range parents {
		if p.ID == item.ID {
			continue
		}

		opts = append(opts, handler.Option{Value: strconv.FormatUint(p.ID, 10), Label: p.Title})
	}

	return map[string][]handler.Option{parentField: opts}, nil
}

// annotate shows parent titles and children counts.
func (m menuPages) annotate(ctx context.Context, items []models.Menu, rows []Row) error {
	parents, err := m.store.Parents(ctx)
	if err != nil {
		return err
	}

	counts, err := m.store.ChildCounts(ctx)
	if err != nil {
		return err
	}

	titles := make(map[uint64]string, len(parents))
	for _, p := range parents {
		titles[p.ID] = p.Title
	}

	for i := range items {
		if pid := items[i].ParentID; pid != nil {
			rows[i].Cells[0] = titles[*pid]
		}

		switch n := counts[items[i].ID]; n {
		case 0:
		case 1:
			rows[i].Note = "1 child"
		default:
			rows[i].Note = strconv.Itoa(n) + " children"
		}
	}

	return nil
}

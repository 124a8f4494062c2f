package servicetext

import (
	"context"
	"strings"

	"github.com/goliatone/go-shop-admin/internal/domain"
	"github.com/goliatone/go-shop-admin/internal/lists"
	"github.com/goliatone/go-shop-admin/internal/logging"
	"github.com/goliatone/go-shop-admin/internal/services"
	"github.com/goliatone/go-shop-admin/internal/texts"
	"github.com/goliatone/go-shop-admin/pkg/interfaces"
	"github.com/google/uuid"
)

// Result summarises the store mutations of one reconciliation.
type Result struct {
	Created int
	Updated int
	Deleted int
}

// Changed reports whether any row was written or removed.
func (r Result) Changed() bool {
	return r.Created+r.Updated+r.Deleted > 0
}

// Reconciler synchronises the submitted text grid of a service with its
// stored text links. It only touches links whose text type is managed.
type Reconciler struct {
	contents  texts.ContentStore
	links     lists.LinkStore
	listTypes lists.TypeStore
	types     []string
	logger    interfaces.Logger

	newContent func() *texts.ContentItem
	newLink    func(parentID uuid.UUID) *lists.LinkItem
}

// NewReconciler builds a reconciler managing the given text type codes.
func NewReconciler(contents texts.ContentStore, links lists.LinkStore, listTypes lists.TypeStore, types []string, logger interfaces.Logger) (*Reconciler, error) {
	if contents == nil || links == nil || listTypes == nil {
		return nil, ErrStoreRequired
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Reconciler{
		contents:   contents,
		links:      links,
		listTypes:  listTypes,
		types:      append([]string(nil), types...),
		logger:     logger,
		newContent: texts.NewContentItem,
		newLink:    lists.NewLinkItem,
	}, nil
}

// Types returns the managed type codes.
func (r *Reconciler) Types() []string {
	return append([]string(nil), r.types...)
}

func (r *Reconciler) managed(code string) bool {
	for _, candidate := range r.types {
		if candidate == code {
			return true
		}
	}
	return false
}

type cell struct {
	row     formRow
	code    string
	typeID  uuid.UUID
	content string
	listID  string
}

// Reconcile applies form to the links of parent. Every lookup runs before the
// first write, so an invalid submission leaves both stores untouched. Callers
// own the transaction around the call.
func (r *Reconciler) Reconcile(ctx context.Context, parent *services.Service, form FormData, cache *TypeCache) (Result, error) {
	var result Result
	if parent == nil {
		return result, ErrItemRequired
	}
	if cache == nil {
		return result, ErrStoreRequired
	}

	cells, err := r.collect(ctx, form, cache)
	if err != nil {
		return result, err
	}

	listType, err := r.listTypes.FindByCode(ctx, domain.ListTypeDefault, domain.DomainText)
	if err != nil {
		return result, err
	}

	current, err := r.current(ctx, parent.ID)
	if err != nil {
		return result, err
	}
	existing := make(map[string]*lists.LinkItem, len(current))
	for _, link := range current {
		existing[link.ID.String()] = link
	}

	survivors := make(map[string]struct{}, len(cells))
	for _, c := range cells {
		survivors[c.listID] = struct{}{}

		link, found := existing[c.listID]
		var item *texts.ContentItem
		if found && link.RefItem != nil {
			item = link.RefItem
			result.Updated++
		} else {
			if !found {
				link = r.newLink(parent.ID)
				link.SiteID = parent.SiteID
			}
			item = r.newContent()
			result.Created++
		}

		item.SetContent(c.content)
		item.TypeID = c.typeID
		item.Type = c.code
		item.LanguageID = c.row.languageID
		if item.SiteID == "" {
			item.SiteID = siteFor(form, c.row.key, parent.SiteID)
		}

		saved, err := r.contents.Save(ctx, item)
		if err != nil {
			return result, err
		}

		link.Position = c.row.position
		link.RefID = saved.ID
		link.TypeID = listType.ID
		link.Type = listType.Code
		link.RefItem = nil
		if _, err := r.links.Save(ctx, link, false); err != nil {
			return result, err
		}
	}

	var linkIDs, refIDs []uuid.UUID
	for _, link := range current {
		if link.RefItem == nil || !r.managed(link.RefItem.Type) {
			continue
		}
		if _, keep := survivors[link.ID.String()]; keep {
			continue
		}
		linkIDs = append(linkIDs, link.ID)
		refIDs = append(refIDs, link.RefID)
	}
	if len(linkIDs) > 0 {
		if err := r.links.DeleteMany(ctx, linkIDs); err != nil {
			return result, err
		}
		if err := r.contents.DeleteMany(ctx, refIDs); err != nil {
			return result, err
		}
		result.Deleted = len(linkIDs)
	}

	r.logger.Debug("servicetext.reconcile.completed",
		"parent_id", parent.ID.String(),
		"created", result.Created,
		"updated", result.Updated,
		"deleted", result.Deleted,
	)
	return result, nil
}

// Project renders the stored links of parent as form data keyed by language
// id. With copying set the link ids are left out so a save creates new links.
func (r *Reconciler) Project(ctx context.Context, parent *services.Service, copying bool) (FormData, error) {
	form := NewFormData()
	if parent == nil {
		return form, ErrItemRequired
	}
	current, err := r.current(ctx, parent.ID)
	if err != nil {
		return form, err
	}
	for _, link := range current {
		item := link.RefItem
		if item == nil {
			continue
		}
		lang := item.LanguageID
		form.LangID[lang] = lang
		form.SiteID[lang] = parent.SiteID
		if !r.managed(item.Type) {
			continue
		}
		data := form.Type(item.Type)
		if copying {
			data.ListID[lang] = ""
		} else {
			data.ListID[lang] = link.ID.String()
		}
		data.Content[lang] = item.Content
	}
	return form, nil
}

func (r *Reconciler) current(ctx context.Context, parentID uuid.UUID) ([]*lists.LinkItem, error) {
	links, err := r.links.FindByParent(ctx, parentID, domain.DomainText)
	if err != nil {
		return nil, err
	}
	out := links[:0]
	for _, link := range links {
		if link.Type == domain.ListTypeDefault {
			out = append(out, link)
		}
	}
	return out, nil
}

// collect flattens the form into non-empty cells in row order, rejecting
// duplicate languages, list ids claimed by two cells and unknown types.
func (r *Reconciler) collect(ctx context.Context, form FormData, cache *TypeCache) ([]cell, error) {
	var cells []cell
	seen := map[string]string{}
	claimed := map[string]struct{}{}
	for _, row := range form.rows() {
		for _, code := range r.types {
			data, ok := form.Types[code]
			if !ok {
				continue
			}
			content := strings.TrimSpace(data.Content[row.key])
			if content == "" {
				continue
			}
			if owner, dup := seen[row.languageID]; dup && owner != row.key {
				return nil, &DuplicateLanguageError{LanguageID: row.languageID}
			}
			seen[row.languageID] = row.key

			listID := strings.TrimSpace(data.ListID[row.key])
			if listID != "" {
				if _, dup := claimed[listID]; dup {
					return nil, &DuplicateLinkError{LinkID: listID}
				}
				claimed[listID] = struct{}{}
			}

			typeID, err := cache.ID(ctx, code)
			if err != nil {
				return nil, err
			}
			cells = append(cells, cell{
				row:     row,
				code:    code,
				typeID:  typeID,
				content: content,
				listID:  listID,
			})
		}
	}
	return cells, nil
}

func siteFor(form FormData, key, fallback string) string {
	if site := strings.TrimSpace(form.SiteID[key]); site != "" {
		return site
	}
	return fallback
}

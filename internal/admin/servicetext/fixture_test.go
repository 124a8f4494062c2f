package servicetext

import (
	"context"
	"strconv"
	"testing"

	"github.com/goliatone/go-shop-admin/internal/domain"
	"github.com/goliatone/go-shop-admin/internal/lists"
	"github.com/goliatone/go-shop-admin/internal/migrations"
	"github.com/goliatone/go-shop-admin/internal/services"
	"github.com/goliatone/go-shop-admin/internal/texts"
	"github.com/google/uuid"
)

type fixture struct {
	contents   *texts.MemoryContentStore
	links      *lists.MemoryLinkStore
	textTypes  *texts.MemoryTypeStore
	listTypes  *lists.MemoryTypeStore
	reconciler *Reconciler
	parent     *services.Service
}

func newFixture(t *testing.T, managed ...string) *fixture {
	t.Helper()
	if len(managed) == 0 {
		managed = DefaultTypes
	}
	f := &fixture{
		contents:  texts.NewMemoryContentStore(),
		textTypes: texts.NewMemoryTypeStore(),
		listTypes: lists.NewMemoryTypeStore(),
		parent: &services.Service{
			ID:     uuid.New(),
			SiteID: "default",
			Type:   services.TypeDelivery,
			Code:   "pickup",
		},
	}
	f.links = lists.NewMemoryLinkStore(f.contents)
	err := migrations.Seed(context.Background(), migrations.Seeds{
		TextTypes:     f.textTypes,
		ListTypes:     f.listTypes,
		TextTypeCodes: []string{"name", "short", "long", "meta"},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	reconciler, err := NewReconciler(f.contents, f.links, f.listTypes, managed, nil)
	if err != nil {
		t.Fatalf("new reconciler: %v", err)
	}
	f.reconciler = reconciler
	return f
}

func (f *fixture) cache() *TypeCache {
	return NewTypeCache(f.textTypes, domain.DomainService)
}

func (f *fixture) reconcile(t *testing.T, form FormData) Result {
	t.Helper()
	result, err := f.reconciler.Reconcile(context.Background(), f.parent, form, f.cache())
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	return result
}

func (f *fixture) project(t *testing.T) FormData {
	t.Helper()
	form, err := f.reconciler.Project(context.Background(), f.parent, false)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	return form
}

func (f *fixture) storedLinks(t *testing.T) []*lists.LinkItem {
	t.Helper()
	found, err := f.links.FindByParent(context.Background(), f.parent.ID, domain.DomainText)
	if err != nil {
		t.Fatalf("find links: %v", err)
	}
	return found
}

func (f *fixture) storedTexts(t *testing.T) []*texts.ContentItem {
	t.Helper()
	items, err := f.contents.List(context.Background())
	if err != nil {
		t.Fatalf("list texts: %v", err)
	}
	return items
}

// grid builds a submitted form from rows of language id and per type content.
func grid(rows ...map[string]string) FormData {
	form := NewFormData()
	for idx, row := range rows {
		key := strconv.Itoa(idx)
		for code, value := range row {
			if code == "lang" {
				form.LangID[key] = value
				continue
			}
			form.Type(code).Content[key] = value
		}
	}
	return form
}

// contentsByCell maps language/type to content as seen by the form renderer.
func contentsByCell(form FormData) map[string]string {
	out := map[string]string{}
	for lang, cells := range form.Contents() {
		for code, content := range cells {
			out[lang+"/"+code] = content
		}
	}
	return out
}

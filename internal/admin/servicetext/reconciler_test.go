package servicetext

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/goliatone/go-shop-admin/internal/domain"
	"github.com/goliatone/go-shop-admin/internal/identity"
	"github.com/goliatone/go-shop-admin/internal/lists"
	"github.com/goliatone/go-shop-admin/internal/texts"
)

func TestReconcileCreatesLinkForNewCell(t *testing.T) {
	f := newFixture(t)
	form := NewFormData()
	form.LangID["2"] = "de"
	form.Type("name").Content["2"] = "  Abholung  "

	result := f.reconcile(t, form)
	if result.Created != 1 || result.Updated != 0 || result.Deleted != 0 {
		t.Fatalf("unexpected result %+v", result)
	}

	links := f.storedLinks(t)
	if len(links) != 1 {
		t.Fatalf("expected one link, got %d", len(links))
	}
	link := links[0]
	if link.Position != 2 {
		t.Fatalf("expected position 2, got %d", link.Position)
	}
	if link.Type != domain.ListTypeDefault || link.Domain != domain.DomainText {
		t.Fatalf("unexpected link type/domain %q/%q", link.Type, link.Domain)
	}
	if link.TypeID != identity.ListTypeUUID(domain.DomainText, domain.ListTypeDefault) {
		t.Fatalf("expected default list type id, got %s", link.TypeID)
	}
	if link.RefItem == nil || link.RefItem.ID != link.RefID {
		t.Fatalf("expected ref item %s to be loaded", link.RefID)
	}
	item := link.RefItem
	if item.Content != "Abholung" || item.Label != "Abholung" {
		t.Fatalf("expected trimmed content and label, got %q/%q", item.Content, item.Label)
	}
	if item.LanguageID != "de" || item.Type != "name" || item.Domain != domain.DomainService {
		t.Fatalf("unexpected item %+v", item)
	}
	if item.TypeID != identity.TextTypeUUID(domain.DomainService, "name") {
		t.Fatalf("expected name type id, got %s", item.TypeID)
	}
	if item.SiteID != f.parent.SiteID {
		t.Fatalf("expected site %q, got %q", f.parent.SiteID, item.SiteID)
	}
}

func TestReconcileRemovesEmptiedCell(t *testing.T) {
	f := newFixture(t)
	f.reconcile(t, grid(map[string]string{"lang": "en", "name": "Pickup", "short": "Collect in store"}))

	form := f.project(t)
	form.Types["short"].Content["en"] = "   "
	result := f.reconcile(t, form)
	if result.Deleted != 1 || result.Updated != 1 || result.Created != 0 {
		t.Fatalf("unexpected result %+v", result)
	}

	links := f.storedLinks(t)
	if len(links) != 1 || links[0].RefItem.Type != "name" {
		t.Fatalf("expected only the name link to survive, got %d links", len(links))
	}
	items := f.storedTexts(t)
	if len(items) != 1 || items[0].Type != "name" {
		t.Fatalf("expected the short text to be deleted, got %d texts", len(items))
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.reconcile(t, grid(
		map[string]string{"lang": "en", "name": "Pickup", "long": "Collect your order"},
		map[string]string{"lang": "de", "name": "Abholung"},
	))

	before := linkRefs(f.storedLinks(t))
	for i := 0; i < 2; i++ {
		result := f.reconcile(t, f.project(t))
		if result.Created != 0 || result.Deleted != 0 {
			t.Fatalf("pass %d: expected no creates or deletes, got %+v", i, result)
		}
	}
	after := linkRefs(f.storedLinks(t))
	if len(after) != len(before) {
		t.Fatalf("expected %d links, got %d", len(before), len(after))
	}
	for id, ref := range before {
		if after[id] != ref {
			t.Fatalf("link %s changed ref from %s to %s", id, ref, after[id])
		}
	}
	if got := len(f.storedTexts(t)); got != 3 {
		t.Fatalf("expected 3 texts, got %d", got)
	}
}

func TestReconcileLeavesUnmanagedTypes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	meta := texts.NewContentItem()
	meta.Type = "meta"
	meta.LanguageID = "en"
	meta.SetContent("owned by another subpart")
	link := lists.NewLinkItem(f.parent.ID)
	link.RefItem = meta
	if _, err := f.links.Save(ctx, link, true); err != nil {
		t.Fatalf("save meta link: %v", err)
	}

	form := grid(map[string]string{"lang": "en", "name": "Pickup"})
	form.Type("meta").Content["0"] = ""
	f.reconcile(t, form)
	f.reconcile(t, NewFormData())

	links := f.storedLinks(t)
	if len(links) != 1 || links[0].RefItem == nil || links[0].RefItem.Type != "meta" {
		t.Fatalf("expected the meta link to be the only survivor, got %d links", len(links))
	}
}

func TestReconcileTruncatesLabel(t *testing.T) {
	f := newFixture(t)
	long := strings.Repeat("a", 300)
	f.reconcile(t, grid(map[string]string{"lang": "en", "long": long}))

	items := f.storedTexts(t)
	if len(items) != 1 {
		t.Fatalf("expected one text, got %d", len(items))
	}
	if items[0].Content != long {
		t.Fatalf("expected full content to be kept")
	}
	if items[0].Label != long[:255] {
		t.Fatalf("expected label of 255 characters, got %d", len(items[0].Label))
	}

	wide := strings.Repeat("ü", 300)
	if got := utf8.RuneCountInString(texts.Label(wide)); got != texts.LabelLimit {
		t.Fatalf("expected label to count characters, got %d", got)
	}
}

func TestReconcileRejectsUnknownTypeBeforeWriting(t *testing.T) {
	f := newFixture(t, "name", "bogus")
	form := grid(map[string]string{"lang": "en", "name": "Pickup", "bogus": "value"})

	_, err := f.reconciler.Reconcile(context.Background(), f.parent, form, f.cache())
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
	var unknown *UnknownTypeError
	if !errors.As(err, &unknown) || unknown.Code != "bogus" {
		t.Fatalf("expected UnknownTypeError for bogus, got %v", err)
	}
	if unknown.TypeDomain != domain.DomainService || !unknown.Domain() {
		t.Fatalf("expected domain failure for service types, got %+v", unknown)
	}
	if got := len(f.storedTexts(t)); got != 0 {
		t.Fatalf("expected no texts, got %d", got)
	}
	if got := len(f.storedLinks(t)); got != 0 {
		t.Fatalf("expected no links, got %d", got)
	}
}

func TestReconcileRejectsDuplicateLanguage(t *testing.T) {
	f := newFixture(t)
	form := grid(
		map[string]string{"lang": "en", "name": "Pickup"},
		map[string]string{"lang": "en", "short": "Collect"},
	)
	_, err := f.reconciler.Reconcile(context.Background(), f.parent, form, f.cache())
	var dup *DuplicateLanguageError
	if !errors.As(err, &dup) || dup.LanguageID != "en" {
		t.Fatalf("expected duplicate language error, got %v", err)
	}
	if got := len(f.storedTexts(t)); got != 0 {
		t.Fatalf("expected no writes, got %d texts", got)
	}
}

func TestReconcileRejectsListIDClaimedTwice(t *testing.T) {
	f := newFixture(t)
	f.reconcile(t, grid(map[string]string{"lang": "en", "name": "Pickup"}))
	before := f.storedLinks(t)
	if len(before) != 1 {
		t.Fatalf("expected one link, got %d", len(before))
	}
	linkID := before[0].ID.String()

	form := grid(map[string]string{"lang": "en", "name": "Pickup 2", "short": "Collect"})
	form.Type("name").ListID["0"] = linkID
	form.Type("short").ListID["0"] = linkID

	_, err := f.reconciler.Reconcile(context.Background(), f.parent, form, f.cache())
	var dup *DuplicateLinkError
	if !errors.As(err, &dup) || dup.LinkID != linkID || !errors.Is(err, ErrDuplicateLink) {
		t.Fatalf("expected duplicate link error, got %v", err)
	}
	items := f.storedTexts(t)
	if len(items) != 1 || items[0].Content != "Pickup" {
		t.Fatalf("expected stored text untouched, got %d items", len(items))
	}
	after := f.storedLinks(t)
	if len(after) != 1 || after[0].RefID != before[0].RefID {
		t.Fatalf("expected link untouched, got %+v", after)
	}
}

func TestReconcileIgnoresDuplicateLanguageWithoutContent(t *testing.T) {
	f := newFixture(t)
	form := grid(
		map[string]string{"lang": "en", "name": "Pickup"},
		map[string]string{"lang": "en", "short": "  "},
	)
	result := f.reconcile(t, form)
	if result.Created != 1 {
		t.Fatalf("expected one created text, got %+v", result)
	}
}

func TestProjectRoundTrip(t *testing.T) {
	f := newFixture(t, "name", "short")
	f.reconcile(t, grid(
		map[string]string{"lang": "en", "name": "Pickup", "short": "Collect in store"},
		map[string]string{"lang": "de", "name": "Abholung", "short": "Im Laden abholen"},
	))

	first := f.project(t)
	if first.LangID["en"] != "en" || first.SiteID["de"] != f.parent.SiteID {
		t.Fatalf("expected projection keyed by language, got %+v", first.LangID)
	}
	f.reconcile(t, first)
	second := f.project(t)

	want, got := contentsByCell(first), contentsByCell(second)
	if len(want) != 4 || len(got) != len(want) {
		t.Fatalf("expected 4 cells, got %d and %d", len(want), len(got))
	}
	for key, value := range want {
		if got[key] != value {
			t.Fatalf("cell %s: expected %q, got %q", key, value, got[key])
		}
	}
}

func TestProjectCopyClearsLinkIDs(t *testing.T) {
	f := newFixture(t)
	f.reconcile(t, grid(map[string]string{"lang": "en", "name": "Pickup"}))

	form, err := f.reconciler.Project(context.Background(), f.parent, true)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if id, ok := form.Types["name"].ListID["en"]; !ok || id != "" {
		t.Fatalf("expected empty list id for copy, got %q", id)
	}
	if form.Types["name"].Content["en"] != "Pickup" {
		t.Fatalf("expected content to be copied")
	}
}

func TestReconcileRequiresParent(t *testing.T) {
	f := newFixture(t)
	if _, err := f.reconciler.Reconcile(context.Background(), nil, NewFormData(), f.cache()); !errors.Is(err, ErrItemRequired) {
		t.Fatalf("expected ErrItemRequired, got %v", err)
	}
}

func linkRefs(links []*lists.LinkItem) map[string]string {
	out := make(map[string]string, len(links))
	for _, link := range links {
		out[link.ID.String()] = link.RefID.String()
	}
	return out
}

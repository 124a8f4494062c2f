package lists_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-shop-admin/internal/domain"
	"github.com/goliatone/go-shop-admin/internal/lists"
	"github.com/goliatone/go-shop-admin/internal/texts"
	"github.com/goliatone/go-shop-admin/pkg/testsupport"
	"github.com/google/uuid"
)

func TestBunLinkStoreSharesTransactionWithContentStore(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewBunDB(t, (*texts.ContentItem)(nil), (*lists.LinkItem)(nil))
	contents := texts.NewBunContentStore(db)
	links := lists.NewBunLinkStore(db, contents)
	parentID := uuid.New()

	txCtx, err := links.Begin(ctx)
	if err != nil {
		t.Fatalf("begin links: %v", err)
	}
	txCtx, err = contents.Begin(txCtx)
	if err != nil {
		t.Fatalf("begin contents: %v", err)
	}

	ref := texts.NewContentItem()
	ref.Type = "short"
	ref.SetContent("Pay by invoice")
	link := lists.NewLinkItem(parentID)
	link.RefItem = ref
	if _, err := links.Save(txCtx, link, true); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := contents.Commit(txCtx); err != nil {
		t.Fatalf("commit contents: %v", err)
	}
	if err := links.Rollback(txCtx); err != nil {
		t.Fatalf("rollback links: %v", err)
	}

	found, err := links.FindByParent(ctx, parentID, domain.DomainText)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(found) != 0 {
		t.Fatalf("expected owner rollback to discard both writes, got %d links", len(found))
	}
	count, err := db.NewSelect().Model((*texts.ContentItem)(nil)).Count(ctx)
	if err != nil {
		t.Fatalf("count texts: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected content insert to be rolled back, got %d", count)
	}
}

func TestBunLinkStoreFindByParentJoinsRefItem(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewBunDB(t, (*texts.ContentItem)(nil), (*lists.LinkItem)(nil))
	contents := texts.NewBunContentStore(db)
	links := lists.NewBunLinkStore(db, contents)
	parentID := uuid.New()

	for i, body := range []string{"DHL", "DHL Express"} {
		ref := texts.NewContentItem()
		ref.Type = "name"
		ref.LanguageID = "en"
		ref.SetContent(body)
		link := lists.NewLinkItem(parentID)
		link.Position = 1 - i
		link.RefItem = ref
		if _, err := links.Save(ctx, link, true); err != nil {
			t.Fatalf("save link %d: %v", i, err)
		}
	}

	found, err := links.FindByParent(ctx, parentID, domain.DomainText)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 links, got %d", len(found))
	}
	if found[0].RefItem == nil || found[0].RefItem.Content != "DHL Express" {
		t.Fatalf("expected links ordered by position with ref items, got %+v", found[0].RefItem)
	}
}

func TestBunListTypeStoreFindByCode(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewBunDB(t, (*lists.ListType)(nil))
	store := lists.NewBunTypeStore(db)

	saved, err := store.Save(ctx, &lists.ListType{Domain: domain.DomainText, Code: domain.ListTypeDefault, Label: "Standard", Status: domain.StatusEnabled})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	found, err := store.FindByCode(ctx, domain.ListTypeDefault, domain.DomainText)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.ID != saved.ID {
		t.Fatalf("expected %s, got %s", saved.ID, found.ID)
	}
}

package migrations

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-shop-admin/internal/domain"
	"github.com/goliatone/go-shop-admin/internal/identity"
	"github.com/goliatone/go-shop-admin/internal/lists"
	"github.com/goliatone/go-shop-admin/internal/stock"
	"github.com/goliatone/go-shop-admin/internal/texts"
)

// DefaultTextTypes are the service text types seeded when none are configured.
var DefaultTextTypes = []string{"name", "short", "long"}

// Seeds bundles the type stores populated by Seed.
type Seeds struct {
	TextTypes  texts.TypeStore
	ListTypes  lists.TypeStore
	StockTypes stock.TypeStore
	// TextTypeCodes overrides DefaultTextTypes.
	TextTypeCodes []string
}

// Seed stores the default type records. Ids are derived from the codes so
// repeated runs update the same rows.
func Seed(ctx context.Context, seeds Seeds) error {
	codes := seeds.TextTypeCodes
	if len(codes) == 0 {
		codes = DefaultTextTypes
	}

	if seeds.TextTypes != nil {
		for _, code := range codes {
			record := &texts.TextType{
				ID:     identity.TextTypeUUID(domain.DomainService, code),
				Domain: domain.DomainService,
				Code:   code,
				Label:  labelFor(code),
				Status: domain.StatusEnabled,
			}
			if _, err := seeds.TextTypes.Save(ctx, record); err != nil {
				return fmt.Errorf("migrations: seed text type %q: %w", code, err)
			}
		}
	}

	if seeds.ListTypes != nil {
		record := &lists.ListType{
			ID:     identity.ListTypeUUID(domain.DomainText, domain.ListTypeDefault),
			Domain: domain.DomainText,
			Code:   domain.ListTypeDefault,
			Label:  "Standard",
			Status: domain.StatusEnabled,
		}
		if _, err := seeds.ListTypes.Save(ctx, record); err != nil {
			return fmt.Errorf("migrations: seed list type: %w", err)
		}
	}

	if seeds.StockTypes != nil {
		record := &stock.StockType{
			ID:     identity.StockTypeUUID(domain.StockTypeDefault),
			Code:   domain.StockTypeDefault,
			Label:  "Default",
			Status: domain.StatusEnabled,
		}
		if _, err := seeds.StockTypes.Save(ctx, record); err != nil {
			return fmt.Errorf("migrations: seed stock type: %w", err)
		}
	}
	return nil
}

func labelFor(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return code
	}
	return strings.ToUpper(code[:1]) + code[1:]
}

package domain

// Domain codes tag the owning context of records shared between managers.
const (
	DomainService = "service"
	DomainProduct = "product"
	DomainText    = "text"
	DomainStock   = "stock"
)

// ListTypeDefault is the relation type used for plain parent to text links.
const ListTypeDefault = "default"

// StockTypeDefault is the location code used when only one stock location exists.
const StockTypeDefault = "default"

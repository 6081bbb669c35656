package inventory

import (
	"math"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is the only currency values are accepted in
const DefaultCurrency = "USD"

var maxCents = decimal.NewFromInt(math.MaxInt64 / 2)

// Error messages
const (
	ErrMsgUnknownItem   = "item not found"
	ErrMsgNotOwner      = "item not owned by participant"
	ErrMsgNotTradable   = "item is not tradable"
	ErrMsgNoValue       = "item has no market value"
	ErrMsgBadPrice      = "unparseable price"
	ErrMsgWrongCurrency = "unsupported currency"
	ErrMsgDuplicateID   = "duplicate item id in catalog"
)

// Error contexts
const (
	ErrContextLoadCatalog = "failed to load item catalog"
	ErrContextCheckItem   = "failed to check item"
)

// Response limits
const (
	MaxItemBodyBytes  = 64 << 10
	MaxErrorBodyBytes = 1 << 10
)

// Log messages
const (
	LogMsgCatalogLoaded       = "Item catalog loaded"
	LogMsgInventoryCallFailed = "Inventory service call failed"
)

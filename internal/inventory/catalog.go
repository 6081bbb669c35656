package inventory

import (
	"context"
	"fmt"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/osse101/JackpotEngine_Go/internal/domain"
	"github.com/osse101/JackpotEngine_Go/internal/logger"
)

// Catalog is a file-backed Checker for development and staging
type Catalog struct {
	mu       sync.RWMutex
	currency string
	records  map[string]Record
}

type catalogFile struct {
	Currency string   `toml:"currency"`
	Items    []Record `toml:"items"`
}

// LoadCatalog reads a TOML catalog of [[items]] tables
func LoadCatalog(ctx context.Context, path string) (*Catalog, error) {
	var file catalogFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextLoadCatalog, err)
	}
	c, err := NewCatalog(file.Currency, file.Items)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgCatalogLoaded, "path", path, "items", c.Len())
	return c, nil
}

// ParseCatalog decodes a TOML catalog from a string
func ParseCatalog(data string) (*Catalog, error) {
	var file catalogFile
	if _, err := toml.Decode(data, &file); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextLoadCatalog, err)
	}
	return NewCatalog(file.Currency, file.Items)
}

// NewCatalog builds a catalog from records
func NewCatalog(currency string, records []Record) (*Catalog, error) {
	if currency == "" {
		currency = DefaultCurrency
	}
	c := &Catalog{currency: currency, records: make(map[string]Record, len(records))}
	for _, r := range records {
		if _, ok := c.records[r.ID]; ok {
			return nil, fmt.Errorf("%s: %s %s", ErrContextLoadCatalog, ErrMsgDuplicateID, r.ID)
		}
		c.records[r.ID] = r
	}
	return c, nil
}

func (c *Catalog) Check(ctx context.Context, ownerID, itemID string) (domain.Item, error) {
	c.mu.RLock()
	r, ok := c.records[itemID]
	c.mu.RUnlock()
	if !ok {
		return domain.Item{}, fmt.Errorf("%s: %w: %s %s", ErrContextCheckItem, domain.ErrInvalidItem, ErrMsgUnknownItem, itemID)
	}
	item, err := r.ToItem(ownerID, c.currency)
	if err != nil {
		return domain.Item{}, fmt.Errorf("%s: %w", ErrContextCheckItem, err)
	}
	return item, nil
}

// Put adds or replaces a record
func (c *Catalog) Put(r Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[r.ID] = r
}

// Len returns the number of records
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

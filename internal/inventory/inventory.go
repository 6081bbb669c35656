package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/osse101/JackpotEngine_Go/internal/domain"
)

// Checker confirms an item exists, belongs to owner and is tradable, and returns it with its
// current value. Item-level failures wrap domain.ErrInvalidItem.
type Checker interface {
	Check(ctx context.Context, ownerID, itemID string) (domain.Item, error)
}

// Record is the external shape of an inventory item
type Record struct {
	ID        string `toml:"id" json:"id"`
	Owner     string `toml:"owner" json:"owner"`
	Name      string `toml:"name" json:"name"`
	IconURL   string `toml:"icon_url" json:"icon_url"`
	Price     string `toml:"price" json:"price"`
	Tradable  bool   `toml:"tradable" json:"tradable"`
	AssetID   string `toml:"asset_id" json:"asset_id"`
	AppID     string `toml:"app_id" json:"app_id"`
	ContextID string `toml:"context_id" json:"context_id"`
}

// ToItem validates the record for owner and converts it, snapshotting the price
func (r Record) ToItem(ownerID, currency string) (domain.Item, error) {
	if r.Owner != ownerID {
		return domain.Item{}, fmt.Errorf("%w: %s %s", domain.ErrInvalidItem, ErrMsgNotOwner, r.ID)
	}
	if !r.Tradable {
		return domain.Item{}, fmt.Errorf("%w: %s %s", domain.ErrInvalidItem, ErrMsgNotTradable, r.ID)
	}
	value, err := ParsePrice(r.Price, currency)
	if err != nil {
		return domain.Item{}, fmt.Errorf("%w: %s: %v", domain.ErrInvalidItem, r.ID, err)
	}
	if value <= 0 {
		return domain.Item{}, fmt.Errorf("%w: %s %s", domain.ErrInvalidItem, ErrMsgNoValue, r.ID)
	}
	return domain.Item{
		ID:        r.ID,
		Name:      r.Name,
		IconURL:   r.IconURL,
		Value:     value,
		AssetID:   r.AssetID,
		AppID:     r.AppID,
		ContextID: r.ContextID,
	}, nil
}

var hundred = decimal.NewFromInt(100)

// ParsePrice converts "12.34 USD" into cents. Fractions of a cent are truncated.
// The currency suffix is optional but must match currency when present.
func ParsePrice(price, currency string) (domain.Cents, error) {
	fields := strings.Fields(price)
	if len(fields) == 0 || len(fields) > 2 {
		return 0, fmt.Errorf("%s: %q", ErrMsgBadPrice, price)
	}
	if len(fields) == 2 && !strings.EqualFold(fields[1], currency) {
		return 0, fmt.Errorf("%s: %s", ErrMsgWrongCurrency, fields[1])
	}

	amount, err := decimal.NewFromString(fields[0])
	if err != nil {
		return 0, fmt.Errorf("%s: %q: %w", ErrMsgBadPrice, price, err)
	}
	if amount.IsNegative() {
		return 0, fmt.Errorf("%s: %q", ErrMsgBadPrice, price)
	}

	cents := amount.Mul(hundred).Truncate(0)
	if !cents.LessThanOrEqual(maxCents) {
		return 0, fmt.Errorf("%s: %q", ErrMsgBadPrice, price)
	}
	return domain.Cents(cents.IntPart()), nil
}

// FormatPrice renders cents back into the external price format
func FormatPrice(c domain.Cents, currency string) string {
	return decimal.New(int64(c), -2).StringFixed(2) + " " + currency
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// BundleContentItem describes one entry of a bundle's package contents.
// Contents are descriptive only; they are not linked to real inventory.
type BundleContentItem struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// BundleContents is the full contents list, stored as a JSON column.
type BundleContents []BundleContentItem

// Value implements driver.Valuer so GORM can persist the contents list.
func (c BundleContents) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner for reading the contents list back.
func (c *BundleContents) Scan(value interface{}) error {
	if value == nil {
		*c = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("unsupported type %T for bundle contents", value)
	}
}

// ProductBundle is a sellable package of items belonging to a store.
// CostPrice is what the store is paid per unit; SellingPrice is what the
// customer pays. Negative-margin bundles are legal (promotional pricing).
type ProductBundle struct {
	ID           string         `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	StoreID      string         `json:"store_id" gorm:"type:varchar(36);index" validate:"required"`
	Name         string         `json:"name" validate:"required,min=3,max=100"`
	Description  string         `json:"description" validate:"omitempty,max=500"`
	CostPrice    float64        `json:"cost_price" validate:"gte=0"`
	SellingPrice float64        `json:"selling_price" validate:"required,gt=0"`
	Contents     BundleContents `json:"contents" gorm:"type:text" validate:"omitempty,dive"`
	gorm.Model   `json:"-"`
}

// Store is a vendor fulfilling bundles at the pickup event.
type Store struct {
	ID             string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name           string `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	WhatsappNumber string `json:"whatsapp_number" validate:"omitempty,max=20"`
	gorm.Model     `json:"-"`
}

// Bank is a payment destination customers can transfer to.
type Bank struct {
	ID            string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name          string `json:"name" validate:"required"`
	AccountNumber string `json:"account_number" validate:"required"`
	AccountName   string `json:"account_name" validate:"required"`
	gorm.Model    `json:"-"`
}

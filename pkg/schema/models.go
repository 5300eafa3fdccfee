// Package schema provides database models of exported vegetation
// strings.
package schema

import (
	"github.com/gnames/gnuuid"
	"github.com/google/uuid"
)

// VegSite is a final vegetation string of an ecological site.
type VegSite struct {
	// ID is a UUIDv5 generated from SiteID, so repeated exports of a site
	// keep the same identifier.
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	// SiteID is the ecological site identifier, for example 'R035XY001UT'.
	SiteID string `gorm:"type:varchar(50);not null;uniqueIndex"`

	// Veg is the code-based vegetation string, for example 'PIPO/QUGA'.
	Veg string `gorm:"type:text;not null;default:''"`
}

// TableName overrides the GORM default.
func (VegSite) TableName() string {
	return "veg_sites"
}

// NewVegSite creates a VegSite with an ID derived from siteID.
func NewVegSite(siteID, veg string) VegSite {
	return VegSite{
		ID:     gnuuid.New(siteID),
		SiteID: siteID,
		Veg:    veg,
	}
}

// Columns are the column names of veg_sites in the order of Values.
func (VegSite) Columns() []string {
	return []string{"id", "site_id", "veg"}
}

// Values returns the fields of a row for bulk inserts.
func (v VegSite) Values() []any {
	return []any{v.ID, v.SiteID, v.Veg}
}

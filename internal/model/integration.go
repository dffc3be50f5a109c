package model

import "time"

// Integration providers. OAuth and sync execution live in the
// integration backend; this service keeps connection records only.
const (
	ProviderGoogleSheets = "google_sheets"
	ProviderZohoCRM      = "zoho_crm"
	ProviderZohoBooks    = "zoho_books"
	ProviderZohoSheet    = "zoho_sheet"
	ProviderLeadSquared  = "leadsquared"
)

// Providers catalog order shown to clients.
var Providers = []string{
	ProviderGoogleSheets,
	ProviderZohoCRM,
	ProviderZohoBooks,
	ProviderZohoSheet,
	ProviderLeadSquared,
}

// Connection statuses.
const (
	IntegrationPending   = "pending"
	IntegrationConnected = "connected"
	IntegrationError     = "error"
)

// Integration a third-party data source connection record
type Integration struct {
	ID        string    `json:"id"`
	Provider  string    `json:"provider"`
	Label     string    `json:"label"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ValidProvider reports whether p is in the provider catalog.
func ValidProvider(p string) bool {
	for _, known := range Providers {
		if p == known {
			return true
		}
	}
	return false
}

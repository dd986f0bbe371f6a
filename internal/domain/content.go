package domain

// Challenge is a points-earning activity. Code is what participants enter
// to claim the points.
// swagger:model Challenge
type Challenge struct {
	Name        string `json:"name"`
	Points      int    `json:"points"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Code        string `json:"-"`
	TypeformURL string `json:"typeform_url,omitempty"`
}

// ClaimResult is the outcome of a successful claim. Points == 0 means the
// challenge had already been claimed and nothing was added.
// swagger:model ClaimResult
type ClaimResult struct {
	Points int `json:"points"`
}

// JoinResult is the outcome of a successful remote join.
// swagger:model JoinResult
type JoinResult struct {
	Points int `json:"points,omitempty"`
}

// Product is a merchandise item in the shop.
// swagger:model Product
type Product struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	AssetURL    string  `json:"asset_url"`
}

// NavigationItem is a site navigation entry.
type NavigationItem struct {
	Route  string `json:"route"`
	Hidden bool   `json:"hidden"`
	Name   string `json:"name"`
}

// SiteSetting is the site-wide configuration published in the CMS.
// swagger:model SiteSetting
type SiteSetting struct {
	MetaDescription    string           `json:"meta_description"`
	TwitterUsername    string           `json:"twitter_username"`
	BrandName          string           `json:"brand_name"`
	SiteName           string           `json:"site_name"`
	SiteDescription    string           `json:"site_description"`
	CopyrightText      string           `json:"copyright_text"`
	SampleTicketNumber int              `json:"sample_ticket_number"`
	LegalURL           string           `json:"legal_url"`
	GithubRepo         string           `json:"github_repo"`
	NavigationItems    []NavigationItem `json:"navigation_items"`
	SiteNameMultiline  []string         `json:"site_name_multiline"`
	SiteURL            string           `json:"site_url"`
	TicketThemes       []string         `json:"ticket_themes"`
	CodeOfConduct      string           `json:"code_of_conduct"`
	DateText           string           `json:"date_text"`
	FullDate           string           `json:"full_date"`
}

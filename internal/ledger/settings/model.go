package settings

// Settings is the typed view over the key/value settings table. Presentation
// keys are stored for the UI shell; the engine itself only consults the
// billing fields.
type Settings struct {
	CompanyName       *string `json:"company_name,omitempty"`
	CompanyEmail      *string `json:"company_email,omitempty"`
	CompanyAddress    *string `json:"company_address,omitempty"`
	CompanyPhone      *string `json:"company_phone,omitempty"`
	BankDetails       *string `json:"bank_details,omitempty"`
	TaxRate           float64 `json:"tax_rate"`
	CurrencySymbol    string  `json:"currency_symbol"`
	InvoicePrefix     string  `json:"invoice_prefix"`
	PrimaryColor      string  `json:"primary_color"`
	FontFamily        string  `json:"font_family"`
	BackgroundOpacity float64 `json:"background_opacity"`
}

// Defaults returns the out-of-the-box settings.
func Defaults() Settings {
	return Settings{
		TaxRate:           15,
		CurrencySymbol:    "R",
		InvoicePrefix:     "INV",
		PrimaryColor:      "#0ea5e9",
		FontFamily:        "Inter",
		BackgroundOpacity: 0.1,
	}
}

// Billing is the subset of settings the document lifecycle engine consults.
type Billing struct {
	TaxRate        float64
	InvoicePrefix  string
	CurrencySymbol string
}

// UpdateSettingsRequest is a partial settings change; only non-nil fields are
// written.
type UpdateSettingsRequest struct {
	CompanyName       *string  `json:"company_name,omitempty" validate:"omitempty,max=200"`
	CompanyEmail      *string  `json:"company_email,omitempty" validate:"omitempty,email"`
	CompanyAddress    *string  `json:"company_address,omitempty" validate:"omitempty,max=500"`
	CompanyPhone      *string  `json:"company_phone,omitempty" validate:"omitempty,max=50"`
	BankDetails       *string  `json:"bank_details,omitempty" validate:"omitempty,max=1000"`
	TaxRate           *float64 `json:"tax_rate,omitempty" validate:"omitempty,gte=0,lte=100"`
	CurrencySymbol    *string  `json:"currency_symbol,omitempty" validate:"omitempty,max=5"`
	InvoicePrefix     *string  `json:"invoice_prefix,omitempty" validate:"omitempty,alphanum,max=10"`
	PrimaryColor      *string  `json:"primary_color,omitempty" validate:"omitempty,hexcolor"`
	FontFamily        *string  `json:"font_family,omitempty" validate:"omitempty,max=100"`
	BackgroundOpacity *float64 `json:"background_opacity,omitempty" validate:"omitempty,gte=0,lte=1"`
}

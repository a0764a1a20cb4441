package entry

// Entry shapes. Required fields must be present with the right type, any
// value of that type is kept as sent. Optional text defaults to the empty
// string. Unknown keys such as a round-tripped "_id" are ignored.

type Punition struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	Date   string `json:"date" example:"2024-01-01"`
	Nature string `json:"nature"`
	Raison string `json:"raison"`
}

type Orgasme struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	Date  string `json:"date" example:"2024-01-01"`
	Type  string `json:"type"`
	Notes string `json:"notes" required:"false"`
}

type CarnetEntry struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	Date    string `json:"date" example:"2024-01-01"`
	Content string `json:"content"`
}

type Histoire struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	Title   string `json:"title"`
	Date    string `json:"date" example:"2024-01-01"`
	Content string `json:"content"`
}

type Lien struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description" required:"false"`
}

type Seance struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	Date        string `json:"date" example:"2024-01-01"`
	Title       string `json:"title"`
	Description string `json:"description" required:"false"`
	Duration    string `json:"duration" required:"false" doc:"Free-form duration, e.g. 1h30"`
}

type InventaireItem struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	Name        string `json:"name"`
	Category    string `json:"category" required:"false"`
	Description string `json:"description" required:"false"`
	Quantity    *int   `json:"quantity" required:"false" default:"1"`
}

// ApplyDefaults fills a missing quantity. Quantity is nil only when the key
// was absent, an explicit 0 is kept.
func (i *InventaireItem) ApplyDefaults() {
	if i.Quantity == nil {
		one := 1
		i.Quantity = &one
	}
}

type Document struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description" required:"false"`
}

type Idee struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	Title       string `json:"title"`
	Description string `json:"description" required:"false"`
	Theme       string `json:"theme"`
	SousTheme   string `json:"sous_theme" required:"false"`
}

type De10Option struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	Number int    `json:"number"`
	Text   string `json:"text"`
}

type Rituel struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	Number int    `json:"number"`
	Text   string `json:"text"`
}

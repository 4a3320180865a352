package catalog

// Feed is the typed shape of a supplier price-list document. It is parsed
// and schema-validated once at the ingestion boundary; the rest of the
// pipeline only ever sees a valid Feed.
type Feed struct {
	Shop       string         `yaml:"shop" json:"shop" validate:"required,max=100"`
	Categories []FeedCategory `yaml:"categories" json:"categories" validate:"required,min=1,dive"`
	Goods      []FeedGood     `yaml:"goods" json:"goods" validate:"required,dive"`
}

// FeedCategory is a category reference inside a feed.
type FeedCategory struct {
	ID   int    `yaml:"id" json:"id" validate:"required,gt=0"`
	Name string `yaml:"name" json:"name" validate:"required,max=100"`
}

// FeedGood is one listing record inside a feed. Parameters is a free-form
// attribute mapping; names are interned into the Parameter dictionary.
type FeedGood struct {
	ID         int               `yaml:"id" json:"id" validate:"required,gt=0"`
	Category   int               `yaml:"category" json:"category" validate:"required,gt=0"`
	Name       string            `yaml:"name" json:"name" validate:"required,max=200"`
	Model      string            `yaml:"model" json:"model" validate:"max=100"`
	Price      float64           `yaml:"price" json:"price" validate:"gte=0"`
	PriceRRC   float64           `yaml:"price_rrc" json:"price_rrc" validate:"gte=0"`
	Quantity   int               `yaml:"quantity" json:"quantity" validate:"gte=0"`
	Parameters map[string]string `yaml:"parameters" json:"parameters"`
}

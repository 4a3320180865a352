package feed

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/markethub/backend/internal/domain/catalog"
)

// Parser decodes and schema-validates a raw feed document.
type Parser struct {
	validate *validator.Validate
}

// NewParser creates a feed parser.
func NewParser() *Parser {
	return &Parser{
		validate: validator.New(),
	}
}

// Parse decodes a YAML feed document and validates its schema. Any malformed
// document is rejected as a whole; there is no partial ingestion.
func (p *Parser) Parse(data []byte) (*catalog.Feed, error) {
	var feed catalog.Feed
	if err := yaml.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("feed: decoding document: %w", err)
	}

	if err := p.validate.Struct(&feed); err != nil {
		return nil, fmt.Errorf("feed: invalid document: %w", err)
	}

	// Every good must reference a category declared in this document.
	declared := make(map[int]struct{}, len(feed.Categories))
	for _, c := range feed.Categories {
		declared[c.ID] = struct{}{}
	}
	for _, g := range feed.Goods {
		if _, ok := declared[g.Category]; !ok {
			return nil, fmt.Errorf("feed: good %d references undeclared category %d", g.ID, g.Category)
		}
	}

	return &feed, nil
}

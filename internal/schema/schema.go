package schema

import "time"

type Query struct {
	Endpoint  string `yaml:"endpoint" validate:"required,url,http_protocol"`
	Predicate string `yaml:"q" validate:"required"`
	Zone      string `yaml:"zone" validate:"required,trove_zone"`
	Encoding  string `yaml:"encoding" validate:"required,eq=json"`
	PageSize  int    `yaml:"n" validate:"gte=0,lte=100"`
	Key       string `yaml:"key" validate:"required"`
}

// Variant pairs a search predicate with the verb used in the rendered message.
type Variant struct {
	Name      string `yaml:"name" validate:"required"`
	Predicate string `yaml:"q" validate:"required"`
	Verb      string `yaml:"verb" validate:"required"`
}

// Query returns base with the variant's predicate applied.
func (v Variant) Query(base Query) Query {
	base.Predicate = v.Predicate
	return base
}

type Display struct {
	Variant    string
	Count      int64
	Formatted  string
	Text       string
	HTML       string
	RenderedAt time.Time
}

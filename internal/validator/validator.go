package validator

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dvdk01/trove-counter/internal/schema"
	"github.com/go-playground/validator/v10"
)

// Zones accepted by the Trove v2 result API.
var Zones = []string{
	"book", "picture", "article", "music", "map",
	"collection", "newspaper", "gazette", "list", "people",
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()
	v.RegisterValidation("http_protocol", validateHTTPProtocol) //nolint:errcheck
	v.RegisterValidation("trove_zone", validateZone)            //nolint:errcheck
	return &Validator{
		validate: v,
	}
}

func validateHTTPProtocol(fl validator.FieldLevel) bool {
	urlStr := fl.Field().String()
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(parsedURL.Scheme)
	return scheme == "http" || scheme == "https"
}

func validateZone(fl validator.FieldLevel) bool {
	zone := fl.Field().String()
	for _, z := range Zones {
		if z == zone {
			return true
		}
	}
	return false
}

func (v *Validator) ValidateURL(url string) error {
	type urlStruct struct {
		URL string `validate:"required,url,http_protocol"`
	}

	return v.validate.Struct(urlStruct{URL: url})
}

func (v *Validator) ValidateQuery(q schema.Query) error {
	if err := v.validate.Struct(q); err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}
	return nil
}

func (v *Validator) ValidateTiming(interval, timeout time.Duration) error {
	type timing struct {
		Interval time.Duration `validate:"gte=1s"`
		Timeout  time.Duration `validate:"gt=0"`
	}

	if err := v.validate.Struct(timing{Interval: interval, Timeout: timeout}); err != nil {
		return fmt.Errorf("invalid timing: %w", err)
	}
	return nil
}

func (v *Validator) ValidateVariants(variants []schema.Variant) ValidationResults {
	results := make([]ValidationResult, len(variants))
	seen := make(map[string]bool)

	for i, variant := range variants {
		err := v.validate.Struct(variant)
		if err == nil && seen[variant.Name] {
			err = fmt.Errorf("duplicate variant %q", variant.Name)
		}
		seen[variant.Name] = true

		results[i] = ValidationResult{
			Name:  variant.Name,
			Index: i + 1,
			Error: err,
		}
	}

	return results
}

type ValidationResult struct {
	Name  string
	Index int
	Error error
}

func (r ValidationResult) IsValid() bool {
	return r.Error == nil
}

type ValidationResults []ValidationResult

func (vr ValidationResults) GetInvalidNames() []string {
	invalid := make([]string, 0)
	for _, result := range vr {
		if !result.IsValid() {
			invalid = append(invalid, result.Name)
		}
	}
	return invalid
}

func HasInvalid(results ValidationResults) bool {
	for _, result := range results {
		if !result.IsValid() {
			return true
		}
	}
	return false
}

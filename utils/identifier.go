package utils

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"CotizaLab/models"
)

// ErrEmptyIdentifier rejects blank search input before any query is issued.
var ErrEmptyIdentifier = errors.New("identifier cannot be blank")

// ClassifyIdentifier decides which record type a raw search input refers
// to: all-digit inputs are clinical order ids, anything else is a
// quotation folio normalized to uppercase. The two identifier spaces are
// assumed disjoint; callers that know better can override the kind.
func ClassifyIdentifier(raw string) (models.DocumentKind, string, error) {
	trimmed := strings.TrimSpace(raw)
	if err := validation.Validate(trimmed, validation.Required); err != nil {
		return "", "", ErrEmptyIdentifier
	}
	if err := validation.Validate(trimmed, is.Digit); err == nil {
		return models.KindOrder, trimmed, nil
	}
	return models.KindQuotation, strings.ToUpper(trimmed), nil
}

// ParseKindOverride maps the optional kind query parameter onto a
// document kind. The second return reports whether a valid override was
// supplied.
func ParseKindOverride(value string) (models.DocumentKind, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(models.KindQuotation):
		return models.KindQuotation, true
	case string(models.KindOrder):
		return models.KindOrder, true
	}
	return "", false
}

package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Abhi-engg/farmstand-backend/internal/catalog"
	pkgerrors "github.com/Abhi-engg/farmstand-backend/pkg/errors"
	"github.com/Abhi-engg/farmstand-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParsePagination reads page/limit with the shared defaults.
func ParsePagination(r *http.Request) (pagination.Params, error) {
	page, err := ParseQueryInt(r, "page", 1, 1, 1_000_000)
	if err != nil {
		return pagination.Params{}, err
	}
	limit, err := ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Page: page, Limit: limit}, nil
}

// ParseProductListInput builds the catalog browse input from query
// parameters. Malformed min_rating is dropped rather than rejected;
// malformed prices are a validation error.
func ParseProductListInput(r *http.Request) (catalog.ListProductsInput, error) {
	query := r.URL.Query()
	input := catalog.ListProductsInput{
		Ordering: strings.TrimSpace(query.Get("ordering")),
	}

	params, err := ParsePagination(r)
	if err != nil {
		return catalog.ListProductsInput{}, err
	}
	input.Pagination = params

	filters := catalog.ProductFilters{
		Category: strings.TrimSpace(query.Get("category")),
		Search:   strings.TrimSpace(query.Get("search")),
	}

	if raw := strings.TrimSpace(query.Get("category_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return catalog.ListProductsInput{}, pkgerrors.New(pkgerrors.CodeValidation, "category_id must be a valid UUID")
		}
		filters.CategoryID = &id
	}

	if value, err := parseQueryDecimal(query.Get("min_price"), "min_price"); err != nil {
		return catalog.ListProductsInput{}, err
	} else if value != nil {
		filters.PriceMin = value
	}
	if value, err := parseQueryDecimal(query.Get("max_price"), "max_price"); err != nil {
		return catalog.ListProductsInput{}, err
	} else if value != nil {
		filters.PriceMax = value
	}

	// A malformed min_rating drops the filter instead of failing the
	// request, preserving long-standing client behavior.
	if raw := strings.TrimSpace(query.Get("min_rating")); raw != "" {
		if value, err := strconv.ParseFloat(raw, 64); err == nil {
			filters.MinRating = &value
		}
	}

	if value, err := parseQueryBool(query.Get("in_stock"), "in_stock"); err != nil {
		return catalog.ListProductsInput{}, err
	} else if value != nil {
		filters.InStock = value
	}

	input.Filters = filters
	return input, nil
}

func parseQueryDecimal(raw, field string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": field})
	}
	return &value, nil
}

func parseQueryBool(raw, field string) (*bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a boolean").WithDetails(map[string]any{"field": field})
	}
	return &value, nil
}

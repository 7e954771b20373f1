package categories

import (
	"context"
	"fmt"

	"bookingwizard/pkg/client"
	"bookingwizard/pkg/logger"
	"bookingwizard/pkg/model"
	"bookingwizard/pkg/sanitizer"
)

// Source provides the categories a new wizard offers.
type Source interface {
	List(ctx context.Context) ([]model.BookingCategory, error)
}

// StaticSource serves the built-in catalog.
type StaticSource struct{}

func (StaticSource) List(context.Context) ([]model.BookingCategory, error) {
	return Catalog(), nil
}

// HTTPSource reads categories from the category metadata service.
type HTTPSource struct {
	client *client.CategoryClient
	logger *logger.Logger
}

func NewHTTPSource(c *client.CategoryClient, log *logger.Logger) *HTTPSource {
	return &HTTPSource{client: c, logger: log}
}

func (s *HTTPSource) List(ctx context.Context) ([]model.BookingCategory, error) {
	resp, err := s.client.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch booking categories: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("fetch booking categories: %s", client.GetErrorMessage(resp))
	}

	list, err := s.client.DecodeCategories(resp)
	if err != nil {
		return nil, err
	}

	for i := range list {
		if _, err := ParseSlug(list[i].Slug); err != nil {
			s.logger.Warn("Category metadata service offers a category without a field set",
				"slug", list[i].Slug,
			)
		}
		for j := range list[i].Schema {
			desc := &list[i].Schema[j]
			if len(desc.Choices) > 0 {
				desc.Choices = sanitizer.NormalizeChoices(desc.Choices)
			}
		}
	}
	return list, nil
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookingwizard/internal/wizard/categories"
	"bookingwizard/pkg/logger"
	"bookingwizard/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type failingSource struct{}

func (failingSource) List(context.Context) ([]model.BookingCategory, error) {
	return nil, errors.New("category service down")
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name   string
		source categories.Source
		path   string
		want   int
	}{
		{"health", failingSource{}, "/health", http.StatusOK},
		{"ready", categories.StaticSource{}, "/ready", http.StatusOK},
		{"not ready", failingSource{}, "/ready", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := httprouter.New()
			NewHealthHandler(tt.source, logger.Discard()).RegisterRoutes(router)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.want {
				t.Errorf("GET %s = %d, want %d", tt.path, rec.Code, tt.want)
			}
		})
	}
}

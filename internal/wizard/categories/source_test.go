package categories

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookingwizard/pkg/client"
	"bookingwizard/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticSource(t *testing.T) {
	list, err := StaticSource{}.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, len(All()))
}

func TestHTTPSource_List(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/booking-categories", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[
			{"id":"5","slug":"hotel-booking","name":"Hotel","requires_date_range":true,
			 "schema":[{"name":"room_type","type":"select","label":"Room","required":true,"choices":[" single","double","double",""]}]},
			{"id":"9","slug":"boat-charter","name":"Boat","schema":[]}
		]}`))
	}))
	defer srv.Close()

	c := client.NewClient(srv.URL, time.Second)
	src := NewHTTPSource(c.Categories, logger.Discard())

	list, err := src.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].RequiresDateRange)
	assert.Equal(t, []string{"single", "double"}, list[0].Schema[0].Choices)
	assert.Equal(t, "boat-charter", list[1].Slug)
}

func TestHTTPSource_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"message":"maintenance"}`))
	}))
	defer srv.Close()

	src := NewHTTPSource(client.NewClient(srv.URL, time.Second).Categories, logger.Discard())

	_, err := src.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maintenance")
}

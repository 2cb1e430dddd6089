package documents

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/sprintai/ticket-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIngest struct {
	resp *entity.LoadDocumentsResponse
	err  error
}

func (u *fakeIngest) LoadDocuments(context.Context, *entity.LoadDocumentsRequest) (*entity.LoadDocumentsResponse, error) {
	if u.err != nil {
		return nil, u.err
	}
	return u.resp, nil
}

func newRouter(u *fakeIngest) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(u))
	return r
}

func TestLoadDocumentsEndpoint(t *testing.T) {
	router := newRouter(&fakeIngest{resp: &entity.LoadDocumentsResponse{
		Status:       "success",
		Message:      "Successfully loaded 4 document chunks",
		ChunksLoaded: 4,
	}})

	body := bytes.NewBufferString(`{"web_urls":["https://example.com/guide"]}`)
	req := httptest.NewRequest(http.MethodPost, "/load-documents", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"chunks_loaded":4`)
}

func TestLoadDocumentsEndpointNoDocuments(t *testing.T) {
	router := newRouter(&fakeIngest{err: entity.ErrNoDocuments})

	body := bytes.NewBufferString(`{"web_urls":["https://example.com/unreachable"]}`)
	req := httptest.NewRequest(http.MethodPost, "/load-documents", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no documents were successfully loaded")
}

func TestLoadDocumentsEndpointBadBody(t *testing.T) {
	router := newRouter(&fakeIngest{})

	req := httptest.NewRequest(http.MethodPost, "/load-documents", bytes.NewBufferString("nope"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

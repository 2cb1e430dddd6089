package ticket

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sprintai/ticket-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsecase struct {
	ticket    *entity.Ticket
	tickets   []*entity.Ticket
	err       error
	deleted   string
	exportErr error
}

func (u *fakeUsecase) GenerateTicket(_ context.Context, req *entity.TicketRequest) (*entity.Ticket, error) {
	if u.err != nil {
		return nil, u.err
	}
	return u.ticket, nil
}

func (u *fakeUsecase) GetTicket(_ context.Context, id string) (*entity.Ticket, error) {
	if u.err != nil {
		return nil, u.err
	}
	return u.ticket, nil
}

func (u *fakeUsecase) ListTickets(context.Context) ([]*entity.Ticket, error) {
	if u.err != nil {
		return nil, u.err
	}
	return u.tickets, nil
}

func (u *fakeUsecase) DeleteTicket(_ context.Context, id string) error {
	u.deleted = id
	return u.err
}

func (u *fakeUsecase) ExportTicket(context.Context, string, string) ([]byte, string, string, error) {
	if u.exportErr != nil {
		return nil, "", "", u.exportErr
	}
	return []byte("# exported"), "text/markdown; charset=utf-8", "ticket_abc.md", nil
}

func newRouter(u *fakeUsecase) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(u))
	return r
}

func sampleTicket() *entity.Ticket {
	return &entity.Ticket{
		ID:          "abc123def456",
		Title:       "Add dark mode toggle",
		Description: "Add a persisted dark mode toggle to settings.",
		Priority:    entity.PriorityMedium,
		Labels:      []string{"ui"},
		CreatedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestGenerateTicketEndpoint(t *testing.T) {
	router := newRouter(&fakeUsecase{ticket: sampleTicket()})

	body := bytes.NewBufferString(`{"prompt":"Add dark mode toggle"}`)
	req := httptest.NewRequest(http.MethodPost, "/generate-ticket", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got entity.Ticket
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "abc123def456", got.ID)
	assert.Equal(t, "Add dark mode toggle", got.Title)
	assert.Nil(t, got.ProjectKey)
}

func TestGenerateTicketEndpointBadBody(t *testing.T) {
	router := newRouter(&fakeUsecase{ticket: sampleTicket()})

	req := httptest.NewRequest(http.MethodPost, "/generate-ticket", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateTicketEndpointErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantInBody string
	}{
		{"missing field", fmt.Errorf("%w: prompt", entity.ErrMissingField), http.StatusBadRequest, "invalid parameter"},
		{"model garbage", fmt.Errorf("%w: no JSON", entity.ErrModelResponse), http.StatusInternalServerError, "failed to parse ticket data"},
		{"storage verification", entity.ErrStorageVerification, http.StatusInternalServerError, "storage verification"},
		{"unexpected", fmt.Errorf("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newRouter(&fakeUsecase{err: tc.err})

			req := httptest.NewRequest(http.MethodPost, "/generate-ticket", bytes.NewBufferString(`{"prompt":"x"}`))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.wantInBody)
		})
	}
}

func TestGetTicketEndpointNotFound(t *testing.T) {
	router := newRouter(&fakeUsecase{err: entity.ErrTicketNotFound})

	req := httptest.NewRequest(http.MethodGet, "/tickets/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListTicketsEndpoint(t *testing.T) {
	router := newRouter(&fakeUsecase{tickets: []*entity.Ticket{sampleTicket()}})

	req := httptest.NewRequest(http.MethodGet, "/tickets", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got entity.ListTicketsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Tickets, 1)
	assert.Equal(t, "abc123def456", got.Tickets[0].ID)
}

func TestDeleteTicketEndpoint(t *testing.T) {
	u := &fakeUsecase{}
	router := newRouter(u)

	req := httptest.NewRequest(http.MethodDelete, "/tickets/abc123def456", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc123def456", u.deleted)
	assert.Contains(t, rec.Body.String(), "deleted")
}

func TestExportTicketEndpoint(t *testing.T) {
	router := newRouter(&fakeUsecase{})

	req := httptest.NewRequest(http.MethodGet, "/tickets/abc/export?format=markdown", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/markdown; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "ticket_abc.md")
	assert.Equal(t, "# exported", rec.Body.String())
}

func TestExportTicketEndpointBadFormat(t *testing.T) {
	router := newRouter(&fakeUsecase{exportErr: fmt.Errorf("%w: xlsx", entity.ErrInvalidFormat)})

	req := httptest.NewRequest(http.MethodGet, "/tickets/abc/export?format=xlsx", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

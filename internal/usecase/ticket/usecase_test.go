package ticket

import (
	"context"
	"testing"

	"github.com/sprintai/ticket-backend/internal/entity"
	"github.com/sprintai/ticket-backend/internal/pkg/textsplit"
	"github.com/sprintai/ticket-backend/internal/pkg/validator"
	"github.com/sprintai/ticket-backend/internal/rag"
	"github.com/sprintai/ticket-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeResolver struct {
	col    *rag.Collection
	called bool
}

func (r *fakeResolver) Resolve(_ context.Context, accessToken, projectKey string) (*rag.Collection, error) {
	r.called = true
	if r.col != nil {
		return r.col, nil
	}
	return &rag.Collection{
		ID:          "col-1",
		Name:        rag.CollectionName(projectKey, accessToken),
		AccessToken: accessToken,
	}, nil
}

type fakeFetcher struct {
	docs    []entity.Document
	lastReq rag.FetchRequest
}

func (f *fakeFetcher) Fetch(_ context.Context, req rag.FetchRequest) []entity.Document {
	f.lastReq = req
	return f.docs
}

type fakeAssembler struct {
	lastCol    *rag.Collection
	lastChunks []entity.Chunk
	context    string
	err        error
}

func (a *fakeAssembler) BuildContext(_ context.Context, col *rag.Collection, chunks []entity.Chunk, _ string) (string, error) {
	a.lastCol = col
	a.lastChunks = chunks
	if a.err != nil {
		return "", a.err
	}
	if a.context != "" {
		return a.context, nil
	}
	return rag.FallbackContext, nil
}

type fakeGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.lastPrompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

// vanishingRepo accepts writes but never finds anything on read, which is
// how a silently failing bucket looks to the verification read-back.
type vanishingRepo struct {
	repository.TicketRepository
}

func (r *vanishingRepo) Store(context.Context, entity.Ticket) error { return nil }

func (r *vanishingRepo) Get(context.Context, string) (*entity.Ticket, error) {
	return nil, entity.ErrTicketNotFound
}

const wellFormedResponse = `{"title":"Add dark mode toggle","description":"Add a persisted dark mode toggle to settings.","priority":"Medium","labels":["ui"]}`

type usecaseFixture struct {
	uc        *TicketUsecase
	resolver  *fakeResolver
	fetcher   *fakeFetcher
	assembler *fakeAssembler
	generator *fakeGenerator
	repo      *repository.TicketMemory
}

func newFixture(persist bool) *usecaseFixture {
	f := &usecaseFixture{
		resolver:  &fakeResolver{},
		fetcher:   &fakeFetcher{},
		assembler: &fakeAssembler{},
		generator: &fakeGenerator{response: wellFormedResponse},
		repo:      repository.NewTicketMemory(),
	}
	f.uc = NewUsecase(
		f.resolver,
		f.fetcher,
		f.assembler,
		f.generator,
		textsplit.Default(),
		f.repo,
		validator.NewValidator(),
		persist,
		zap.NewNop(),
	)
	return f
}

func TestGenerateTicketBareRequest(t *testing.T) {
	f := newFixture(true)

	ticket, err := f.uc.GenerateTicket(context.Background(), &entity.TicketRequest{
		Prompt: "Add dark mode toggle",
	})

	require.NoError(t, err)
	assert.Regexp(t, "^[0-9a-f]{12}$", ticket.ID)
	assert.Equal(t, "Add dark mode toggle", ticket.Title)
	assert.Equal(t, entity.PriorityMedium, ticket.Priority)
	assert.Nil(t, ticket.ProjectKey)
	assert.False(t, ticket.CreatedAt.IsZero())

	assert.False(t, f.resolver.called)
	assert.Nil(t, f.assembler.lastCol)
	assert.False(t, f.fetcher.lastReq.IncludeDefaultGuide)
	assert.Contains(t, f.generator.lastPrompt, rag.FallbackContext)

	stored, err := f.repo.Get(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, ticket.Title, stored.Title)
}

func TestGenerateTicketProjectScope(t *testing.T) {
	f := newFixture(true)
	f.fetcher.docs = []entity.Document{
		{Text: "ABC-1: Login page blank after OAuth redirect", Source: entity.SourceJira},
	}
	f.assembler.context = "ABC-1: Login page blank after OAuth redirect"

	ticket, err := f.uc.GenerateTicket(context.Background(), &entity.TicketRequest{
		Prompt:      "Fix login bug",
		ProjectKey:  "ABC",
		AccessToken: "tok1",
		JiraBaseURL: "https://jira.example.com",
	})

	require.NoError(t, err)
	require.NotNil(t, ticket.ProjectKey)
	assert.Equal(t, "ABC", *ticket.ProjectKey)

	assert.True(t, f.resolver.called)
	require.NotNil(t, f.assembler.lastCol)
	assert.Regexp(t, "^project_ABC_[0-9a-f]{8}$", f.assembler.lastCol.Name)
	assert.True(t, f.fetcher.lastReq.IncludeDefaultGuide)
	assert.NotEmpty(t, f.assembler.lastChunks)
	assert.Contains(t, f.generator.lastPrompt, "ABC-1")
}

func TestGenerateTicketMissingPrompt(t *testing.T) {
	f := newFixture(true)

	_, err := f.uc.GenerateTicket(context.Background(), &entity.TicketRequest{Prompt: "   "})

	assert.ErrorIs(t, err, entity.ErrMissingField)
	assert.False(t, f.resolver.called)
}

func TestGenerateTicketModelGarbage(t *testing.T) {
	f := newFixture(true)
	f.generator.response = "I cannot produce a ticket right now."

	_, err := f.uc.GenerateTicket(context.Background(), &entity.TicketRequest{Prompt: "anything"})

	assert.ErrorIs(t, err, entity.ErrModelResponse)
}

func TestGenerateTicketStorageVerification(t *testing.T) {
	f := newFixture(true)
	f.uc.ticketRepo = &vanishingRepo{}

	_, err := f.uc.GenerateTicket(context.Background(), &entity.TicketRequest{Prompt: "anything"})

	assert.ErrorIs(t, err, entity.ErrStorageVerification)
}

func TestGenerateTicketPersistenceDisabled(t *testing.T) {
	f := newFixture(false)

	ticket, err := f.uc.GenerateTicket(context.Background(), &entity.TicketRequest{Prompt: "anything"})

	require.NoError(t, err)
	_, err = f.repo.Get(context.Background(), ticket.ID)
	assert.ErrorIs(t, err, entity.ErrTicketNotFound)
}

func TestGenerateTicketIdentityStableAcrossRuns(t *testing.T) {
	f := newFixture(true)

	first, err := f.uc.GenerateTicket(context.Background(), &entity.TicketRequest{Prompt: "same prompt"})
	require.NoError(t, err)
	second, err := f.uc.GenerateTicket(context.Background(), &entity.TicketRequest{Prompt: "same prompt"})
	require.NoError(t, err)

	// Same prompt and project address the same stored ticket.
	assert.Equal(t, first.ID, second.ID)

	tickets, err := f.repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, tickets, 1)
}

func TestExportTicketMarkdown(t *testing.T) {
	f := newFixture(true)
	ticket, err := f.uc.GenerateTicket(context.Background(), &entity.TicketRequest{Prompt: "export me"})
	require.NoError(t, err)

	data, contentType, filename, err := f.uc.ExportTicket(context.Background(), ticket.ID, "markdown")

	require.NoError(t, err)
	assert.Equal(t, "text/markdown; charset=utf-8", contentType)
	assert.Equal(t, "ticket_"+ticket.ID+".md", filename)
	assert.Contains(t, string(data), "# "+ticket.Title)
}

func TestExportTicketUnknownFormat(t *testing.T) {
	f := newFixture(true)

	_, _, _, err := f.uc.ExportTicket(context.Background(), "whatever", "xlsx")

	assert.ErrorIs(t, err, entity.ErrInvalidFormat)
}

func TestExportTicketMissing(t *testing.T) {
	f := newFixture(true)

	_, _, _, err := f.uc.ExportTicket(context.Background(), "missing", "markdown")

	assert.ErrorIs(t, err, entity.ErrTicketNotFound)
}

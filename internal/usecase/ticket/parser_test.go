package ticket

import (
	"strings"
	"testing"

	"github.com/sprintai/ticket-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModelResponseCleanJSON(t *testing.T) {
	response := `{"title":"Add dark mode toggle","description":"Add a toggle to the settings page.","priority":"High","labels":["ui","settings"]}`

	ticket, err := ParseModelResponse(response)

	require.NoError(t, err)
	assert.Equal(t, "Add dark mode toggle", ticket.Title)
	assert.Equal(t, "Add a toggle to the settings page.", ticket.Description)
	assert.Equal(t, entity.PriorityHigh, ticket.Priority)
	assert.Equal(t, []string{"ui", "settings"}, ticket.Labels)
}

func TestParseModelResponseWrappedInProse(t *testing.T) {
	response := "Sure! Here is the ticket you asked for:\n```json\n" +
		`{"title":"Fix login bug","description":"Users cannot log in.","priority":"High","labels":["auth"]}` +
		"\n```\nLet me know if you need anything else."

	ticket, err := ParseModelResponse(response)

	require.NoError(t, err)
	assert.Equal(t, "Fix login bug", ticket.Title)
	assert.Equal(t, entity.PriorityHigh, ticket.Priority)
}

func TestParseModelResponseDefaults(t *testing.T) {
	ticket, err := ParseModelResponse(`{}`)

	require.NoError(t, err)
	assert.Equal(t, "Untitled", ticket.Title)
	assert.Equal(t, "No description provided", ticket.Description)
	assert.Equal(t, entity.PriorityMedium, ticket.Priority)
	assert.NotNil(t, ticket.Labels)
	assert.Empty(t, ticket.Labels)
}

func TestParseModelResponseUnknownPriority(t *testing.T) {
	ticket, err := ParseModelResponse(`{"title":"t","priority":"Urgent"}`)

	require.NoError(t, err)
	assert.Equal(t, entity.PriorityMedium, ticket.Priority)
}

func TestParseModelResponsePriorityCaseInsensitive(t *testing.T) {
	ticket, err := ParseModelResponse(`{"title":"t","priority":" low "}`)

	require.NoError(t, err)
	assert.Equal(t, entity.PriorityLow, ticket.Priority)
}

func TestParseModelResponseNoJSON(t *testing.T) {
	_, err := ParseModelResponse("I am sorry, I cannot help with that.")

	assert.ErrorIs(t, err, entity.ErrModelResponse)
}

func TestParseModelResponseMalformedExtractedObject(t *testing.T) {
	_, err := ParseModelResponse(`here you go: {"title": "broken`)

	assert.ErrorIs(t, err, entity.ErrModelResponse)
}

func TestTicketIDDeterministic(t *testing.T) {
	first := TicketID("Add dark mode toggle", "ABC")
	second := TicketID("Add dark mode toggle", "ABC")

	assert.Equal(t, first, second)
	assert.Len(t, first, 12)
	assert.Regexp(t, "^[0-9a-f]{12}$", first)
}

func TestTicketIDVariesWithInputs(t *testing.T) {
	base := TicketID("Add dark mode toggle", "ABC")

	assert.NotEqual(t, base, TicketID("Add dark mode toggle", "XYZ"))
	assert.NotEqual(t, base, TicketID("Fix login bug", "ABC"))
}

func TestBuildPromptSubstitution(t *testing.T) {
	prompt := BuildPrompt("Some context lines.", "Add dark mode toggle")

	assert.Contains(t, prompt, "Some context lines.")
	assert.Contains(t, prompt, "Add dark mode toggle")
	assert.NotContains(t, prompt, "{context}")
	assert.NotContains(t, prompt, "{prompt}")
	assert.True(t, strings.Contains(prompt, "Sprint AI"))
}

package entity

// TicketRequest is the body of POST /generate-ticket. Only Prompt is
// required; project-scoped retrieval activates when ProjectKey, AccessToken
// and JiraBaseURL are all present.
type TicketRequest struct {
	Prompt      string   `json:"prompt"`
	Context     []string `json:"context,omitempty"`
	ProjectKey  string   `json:"project_key,omitempty"`
	AccessToken string   `json:"access_token,omitempty"`
	JiraBaseURL string   `json:"jira_base_url,omitempty"`
	YoutubeURLs []string `json:"youtube_urls,omitempty"`
	WebURLs     []string `json:"web_urls,omitempty"`
}

// HasProjectScope reports whether the tracker context path is active.
func (r *TicketRequest) HasProjectScope() bool {
	return r.ProjectKey != "" && r.AccessToken != "" && r.JiraBaseURL != ""
}

type LoadDocumentsRequest struct {
	YoutubeURLs []string `json:"youtube_urls,omitempty"`
	WebURLs     []string `json:"web_urls,omitempty"`
	ProjectKey  string   `json:"project_key,omitempty"`
	AccessToken string   `json:"access_token,omitempty"`
	JiraBaseURL string   `json:"jira_base_url,omitempty"`
}

func (r *LoadDocumentsRequest) HasProjectScope() bool {
	return r.ProjectKey != "" && r.AccessToken != "" && r.JiraBaseURL != ""
}

type LoadDocumentsResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ChunksLoaded int    `json:"chunks_loaded"`
}

type ListTicketsResponse struct {
	Tickets []*Ticket `json:"tickets"`
}

type DeleteTicketResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

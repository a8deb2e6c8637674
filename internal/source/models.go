package source

// apiResponse is the search endpoint envelope.
type apiResponse struct {
	Status       string       `json:"status"`
	TotalResults int          `json:"totalResults"`
	Results      []apiArticle `json:"results"`
}

// apiArticle is one candidate record as the endpoint serves it.
type apiArticle struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Link        string   `json:"link"`
	ImageURL    string   `json:"image_url"`
	SourceID    string   `json:"source_id"`
	PubDate     string   `json:"pubDate"`
	Category    []string `json:"category"`
}

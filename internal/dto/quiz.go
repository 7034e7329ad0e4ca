package dto

// Kinds of GenerateQuizResponse.
const (
	KindTable = "table"
	KindRaw   = "raw"
)

// QuizRowResponse is one row of the rendered quiz table.
// @Description Quiz table row, numbered from 1
type QuizRowResponse struct {
	Index   int    `json:"index"`
	MCQ     string `json:"MCQ"`
	Choices string `json:"Choices"`
	Correct string `json:"Correct"`
}

// UsageResponse reports the tokens spent on one generation cycle.
type UsageResponse struct {
	TotalTokens      int     `json:"total_tokens"`
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalCost        float64 `json:"total_cost"`
}

// GenerateQuizResponse is the result of one generation cycle.
// Kind "table" carries Rows, Review and the CSV download; kind "raw" carries
// the generator's unexpected value in Raw, to be shown as is.
// @Description Generated quiz
type GenerateQuizResponse struct {
	ID          string            `json:"id,omitempty"`
	Kind        string            `json:"kind"`
	Rows        []QuizRowResponse `json:"rows,omitempty"`
	Review      string            `json:"review"`
	CSV         string            `json:"csv,omitempty"`
	DownloadURL string            `json:"download_url,omitempty"`
	Raw         any               `json:"raw,omitempty"`
	Usage       *UsageResponse    `json:"usage,omitempty"`
}

// HealthResponse is returned by the health check.
type HealthResponse struct {
	Status string `json:"status"`
	Cache  string `json:"cache"`
}

package models

// Feedback is the structured view of a model response that follows the
// requested format. The raw text stays authoritative.
type Feedback struct {
	JDMatch         string   `json:"jd_match"`
	MissingKeywords []string `json:"missing_keywords"`
	ProfileSummary  string   `json:"profile_summary"`
	Feedback        string   `json:"feedback"`
}

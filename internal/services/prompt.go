package services

import (
	"fmt"
	"strings"
)

// screeningPromptTemplate takes, in order: role tags, job description, résumé text.
const screeningPromptTemplate = `
Hey ATS, act like a skilled recruiter with deep understanding of %s.
Evaluate the resume based on the job description: %s.
Consider the competitive job market and provide actionable feedback for improvement.
Assign matching percentage based on JD and missing keywords with high accuracy.

Resume: %s

Response format: {'JD Match': '%%', "MissingKeywords": [], "Profile summary": "", "Feedback": ""}
`

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildScreeningPrompt substitutes the inputs verbatim into the recruiter
// template. Empty inputs are allowed and render as empty strings.
func (pb *PromptBuilder) BuildScreeningPrompt(roleTags []string, jobDescription, resume string) string {
	return fmt.Sprintf(screeningPromptTemplate,
		strings.Join(roleTags, ", "), jobDescription, resume)
}

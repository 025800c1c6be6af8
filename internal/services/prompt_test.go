package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildScreeningPromptContainsInputsVerbatim(t *testing.T) {
	pb := NewPromptBuilder()

	tests := []struct {
		name   string
		roles  []string
		jd     string
		resume string
		tags   string
	}{
		{
			name:   "single role",
			roles:  []string{"Data Science"},
			jd:     "Looking for a Python data scientist",
			resume: "Experienced engineer",
			tags:   "Data Science",
		},
		{
			name:   "several roles keep order",
			roles:  []string{"Cloud Computing", "Software Engineering"},
			jd:     "Kubernetes, Go, 100% remote",
			resume: "Built {services} with 99.9% uptime",
			tags:   "Cloud Computing, Software Engineering",
		},
		{
			name:   "empty inputs",
			roles:  nil,
			jd:     "",
			resume: "",
			tags:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := pb.BuildScreeningPrompt(tt.roles, tt.jd, tt.resume)

			assert.Contains(t, prompt, "deep understanding of "+tt.tags+".")
			assert.Contains(t, prompt, "based on the job description: "+tt.jd+".")
			assert.Contains(t, prompt, "Resume: "+tt.resume+"\n")
			assert.NotContains(t, prompt, "%!")
		})
	}
}

func TestBuildScreeningPromptIsDeterministic(t *testing.T) {
	pb := NewPromptBuilder()
	roles := []string{"Machine Learning", "Data Science"}

	first := pb.BuildScreeningPrompt(roles, "jd", "resume")
	second := pb.BuildScreeningPrompt(roles, "jd", "resume")

	assert.Equal(t, first, second)
}

func TestBuildScreeningPromptTemplate(t *testing.T) {
	prompt := NewPromptBuilder().BuildScreeningPrompt([]string{"Data Science"}, "JD", "CV")

	want := "\nHey ATS, act like a skilled recruiter with deep understanding of Data Science.\n" +
		"Evaluate the resume based on the job description: JD.\n" +
		"Consider the competitive job market and provide actionable feedback for improvement.\n" +
		"Assign matching percentage based on JD and missing keywords with high accuracy.\n" +
		"\n" +
		"Resume: CV\n" +
		"\n" +
		"Response format: {'JD Match': '%', \"MissingKeywords\": [], \"Profile summary\": \"\", \"Feedback\": \"\"}\n"

	assert.Equal(t, want, prompt)
	assert.True(t, strings.HasPrefix(prompt, "\n"))
}

package usecase_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"resume_optimizer/internal/feature/analysis/domain/entity"
	"resume_optimizer/internal/feature/analysis/usecase"
)

func TestBuildPrompt_WithoutCompany(t *testing.T) {
	t.Parallel()

	prompt := usecase.BuildPrompt("Go developer wanted", "10 years of Go", nil)

	assert.Contains(t, prompt, "Job Description:\nGo developer wanted")
	assert.Contains(t, prompt, "Resume:\n10 years of Go")
	assert.Contains(t, prompt, "'## Match Score: X%'")
	assert.Contains(t, prompt, "7. Suggested Action Items")
	assert.NotContains(t, prompt, "Company Context:")
}

func TestBuildPrompt_WithCompany(t *testing.T) {
	t.Parallel()

	company := &entity.CompanySummary{
		Name:        "Acme",
		Description: "Rockets and anvils",
		About:       strings.Repeat("a", usecase.MaxCompanyAboutChars+500),
		Website:     "https://acme.test",
	}

	prompt := usecase.BuildPrompt("job", "resume", company)

	assert.Contains(t, prompt, "Company Context:")
	assert.Contains(t, prompt, "- Name: Acme")
	assert.Contains(t, prompt, "- Description: Rockets and anvils")
	assert.Contains(t, prompt, "- About: "+strings.Repeat("a", usecase.MaxCompanyAboutChars)+"\n")
	assert.NotContains(t, prompt, strings.Repeat("a", usecase.MaxCompanyAboutChars+1))
}

// TestBuildPrompt_TruncatesDocuments は求人票・履歴書が文字数（rune）単位で切り詰められることを検証します。
func TestBuildPrompt_TruncatesDocuments(t *testing.T) {
	t.Parallel()

	job := strings.Repeat("求", usecase.MaxDocumentChars) + "JOBTAIL"
	resume := strings.Repeat("r", usecase.MaxDocumentChars) + "RESUMETAIL"

	prompt := usecase.BuildPrompt(job, resume, nil)

	assert.Contains(t, prompt, strings.Repeat("求", usecase.MaxDocumentChars))
	assert.NotContains(t, prompt, "JOBTAIL")
	assert.NotContains(t, prompt, "RESUMETAIL")
}

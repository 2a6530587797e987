package usecase

import (
	"fmt"
	"strings"

	"resume_optimizer/internal/feature/analysis/domain/entity"
	"resume_optimizer/internal/platform/textclean"
)

const (
	// MaxDocumentChars は求人票・履歴書それぞれをプロンプトに埋め込む際の最大文字数です。
	MaxDocumentChars = 8000
	// MaxCompanyAboutChars は企業Aboutテキストをプロンプトに埋め込む際の最大文字数です。
	MaxCompanyAboutChars = 2000
)

const promptInstructions = `Provide your analysis with these sections:
1. Match Score (0-100%) with justification - format exactly as: '## Match Score: X%' where X is the score
2. Company-Specific Recommendations
3. Top 3 Missing Keywords
4. Top 3 Overused Terms
5. Skills Gap Analysis
6. Specific Content Improvements
7. Suggested Action Items

Format with clear section headers (##) and bullet points. Do not include any HTML tags in your response.`

// BuildPrompt は求人票・履歴書・企業情報（任意）から分析用プロンプトを組み立てます。
func BuildPrompt(jobText, resumeText string, company *entity.CompanySummary) string {
	var b strings.Builder

	b.WriteString("Analyze this job description and resume pair. First, calculate and provide a Match Score between 0-100%\n")
	b.WriteString("based on how well the resume matches the job requirements. Then provide specific, actionable suggestions.\n\n")

	if company != nil {
		b.WriteString("Company Context:\n")
		fmt.Fprintf(&b, "- Name: %s\n", company.Name)
		fmt.Fprintf(&b, "- Description: %s\n", company.Description)
		fmt.Fprintf(&b, "- About: %s\n\n", textclean.Truncate(company.About, MaxCompanyAboutChars))
	}

	fmt.Fprintf(&b, "Job Description:\n%s\n\n", textclean.Truncate(jobText, MaxDocumentChars))
	fmt.Fprintf(&b, "Resume:\n%s\n\n", textclean.Truncate(resumeText, MaxDocumentChars))
	b.WriteString(promptInstructions)

	return b.String()
}

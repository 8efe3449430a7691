package anthropic

import (
	"fmt"

	"github.com/heartmarshall/ideascore-backend/internal/domain"
	"github.com/heartmarshall/ideascore-backend/internal/provider"
)

const documentPrompt = `You are a product strategist helping a founder turn an idea into a project brief.

Idea:
%s

Write a project document in Markdown with these sections:
1. Summary
2. Problem and target users
3. Proposed solution and core features
4. Market and competition
5. Business model
6. Risks and open questions
7. First 90 days

Be concrete and concise. Output only the Markdown document.`

const analysisPrompt = `You are an experienced venture analyst.

Idea:
%s

Assess the idea and respond in Markdown with:
- An overall score from 0 to 100 and one sentence explaining it
- Scores from 0 to 10 for: market size, novelty, feasibility, monetization, timing
- The three strongest points
- The three biggest risks
- One suggestion that would most improve the idea

Output only the Markdown analysis.`

// buildPrompt selects the prompt template for the requested operation.
func buildPrompt(req provider.GenerateRequest) (string, error) {
	switch req.Operation {
	case domain.OperationDocument:
		return fmt.Sprintf(documentPrompt, req.Input), nil
	case domain.OperationAnalysis:
		return fmt.Sprintf(analysisPrompt, req.Input), nil
	}
	return "", fmt.Errorf("no prompt for operation %q", req.Operation)
}

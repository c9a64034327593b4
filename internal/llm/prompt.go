package llm

import "strings"

// SystemPrompt is the fixed instruction sent with every extraction request.
const SystemPrompt = "You are a helpful assistant that extracts structured information from academic papers."

const extractionTemplate = `
Extract the following information from the given text. Return the results in a JSON format:

Required fields:
- title: The title of the paper
- authors: List of authors
- publication_year: Year of publication
- abstract: The paper's abstract
- summary: A summary of the paper
- keywords: List of keywords if present
- research_questions: List of research questions if present
- challenges_and_gaps: List of identified challenges and gaps if present
- novelties: List of novelties if present
- main_findings: List of main findings if present
- contributions: List of contributions if present
- limitations: List of limitations if present
- future_work: List of future work if present
- recommendations: List of recommendations if present
- conclusion: The conclusion of the paper

Text:
%s

Return only the JSON object without any additional text.
`

// BuildUserPrompt interpolates the document text into the fixed extraction template.
func BuildUserPrompt(text string) string {
	return strings.Replace(strings.TrimLeft(extractionTemplate, "\n"), "%s", text, 1)
}

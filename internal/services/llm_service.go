package services

import (
	"context"
	"fmt"
	"log"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// LLMService extracts structured job data from raw posting HTML. It is
// a manual fallback for scrape sources that deliver unstructured text;
// the normal ingest path never needs it.
type LLMService struct {
	Client llms.Model
}

// NewLLMService initializes the Gemini client. Returns nil when no API
// key is configured; callers treat a nil service as "feature off".
func NewLLMService(apiKey string) *LLMService {
	if apiKey == "" {
		log.Println("LLM extraction disabled (no GEMINI_API_KEY)")
		return nil
	}

	ctx := context.Background()
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel("gemini-2.5-flash"),
	)
	if err != nil {
		log.Printf("Failed to create Gemini client, LLM extraction disabled: %v", err)
		return nil
	}

	return &LLMService{Client: llm}
}

const jobExtractionPrompt = `
You are an expert Job Data Extraction Agent. Your task is to analyze the provided raw HTML/Text from a job posting and extract structured data.

### INSTRUCTIONS:
1. **Analyze** the text to identify the core job details.
2. **Ignore** navigation menus, footers, "similar jobs" lists, and site advertisements.
3. **Extract** the following fields strictly.
4. **Format** the output as valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
    "title": "Job title (e.g., Senior Backend Engineer)",
    "company": "Name of the company (e.g., Google, StartupInc)",
    "location": "Job location or 'Remote'",
    "description": "A clean summary of the job. Focus on Responsibilities and Requirements. Remove HTML tags.",
    "salary": "The salary string if explicitly mentioned (e.g., '$100k - $150k'), otherwise null",
    "contract_type": "permanent, contract, internship or null",
    "experience_level": "entry, mid, senior or null"
}

### CONSTRAINT:
If a piece of information is missing, set the value to null. Do not hallucinate or guess.

### RAW CONTENT:
%s
`

// ExtractJobDetails takes raw HTML and returns a structured JSON string.
func (s *LLMService) ExtractJobDetails(ctx context.Context, rawHTML string) (string, error) {
	if len(rawHTML) > 20000 {
		rawHTML = rawHTML[:20000]
	}

	prompt := fmt.Sprintf(jobExtractionPrompt, rawHTML)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
	if err != nil {
		return "", fmt.Errorf("extraction failed: %w", err)
	}
	return resp, nil
}

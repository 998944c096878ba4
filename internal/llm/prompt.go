package llm

import "strings"

// SystemPrompt instructs the model to return structured resume data as JSON.
const SystemPrompt = `You are a resume parsing engine. Extract structured data from the resume and respond with a single JSON object, no prose. The object must have these keys:
{
  "personal_info": {"name": string or null, "email": string or null, "phone": string or null, "linkedin": string or null, "location": string or null},
  "summary": string or null,
  "skills": [string],
  "experience": [{"title": string, "company": string, "start": string, "end": string, "description": string}],
  "education": [{"degree": string, "institution": string, "year": string}],
  "projects": [{"name": string, "description": string}],
  "level": "entry" | "mid" | "senior" | null,
  "confidence": number between 0 and 1
}
Use null for anything you cannot find. Do not invent data.`

// BuildUserPrompt assembles the user message for text-based extraction.
func BuildUserPrompt(resumeText, jobDescription string) string {
	var b strings.Builder
	b.WriteString("Resume text:\n\n")
	b.WriteString(resumeText)
	if strings.TrimSpace(jobDescription) != "" {
		b.WriteString("\n\nTarget job description (use it to judge seniority level):\n\n")
		b.WriteString(jobDescription)
	}
	return b.String()
}

// BuildFilePrompt assembles the user message that accompanies a raw file part.
func BuildFilePrompt(fileName, jobDescription string) string {
	var b strings.Builder
	b.WriteString("Extract structured data from the attached resume file ")
	b.WriteString(fileName)
	b.WriteString(".")
	if strings.TrimSpace(jobDescription) != "" {
		b.WriteString("\n\nTarget job description (use it to judge seniority level):\n\n")
		b.WriteString(jobDescription)
	}
	return b.String()
}

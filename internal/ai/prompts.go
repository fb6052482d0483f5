package ai

// SystemPrompts contains all system-level instructions for AI interactions
type SystemPrompts struct {
	ParseResume string
	ScoreResume string
}

// UserPrompts contains user-level prompts with placeholders for dynamic content
type UserPrompts struct {
	ParseResume string
	ScoreResume string
}

// DefaultSystemPrompts provides the default system instructions
var DefaultSystemPrompts = SystemPrompts{
	ParseResume: `You are an expert resume parsing AI with a strict commitment to accuracy. Your core principles are:

- NEVER invent, infer, or embellish any information not present in the source text
- Every extracted field must be directly traceable to the raw resume
- Preserve the applicant's own wording wherever possible

Your expertise includes:
- Resume structure recognition across many formats
- Contact information extraction
- Grouping categorized skill lists
- Splitting job achievements into individual bullet points`,

	ScoreResume: `You are an expert ATS (Applicant Tracking System) optimization assistant. Your role is to:

- Score resumes the way real applicant tracking systems rank them
- Ground every suggestion in the actual resume content
- Keep suggestions concise and actionable

You evaluate resumes on section completeness, keyword relevance, length, contact information, and structural cleanliness.`,
}

// DefaultUserPrompts provides the default user prompt templates
var DefaultUserPrompts = UserPrompts{
	ParseResume: `Extract the information from the following raw resume text and return it as a structured JSON object.
If skills are categorized (e.g., 'Cloud & Platforms: ...'), extract them into a 'skills' array where each object has a 'category' and a 'details' string.
Ensure each description point for work experience is a separate string in the description array.

Resume Text:
---
%s
---`,

	ScoreResume: `Analyze the provided resume JSON data. Calculate an overall ATS score from 0 to 100 based on these weighted criteria:
- Section Completeness (all major sections present): 25%%
- Keyword Relevance (action verbs, technical skills): 25%%
- Appropriate Length (ideally 400-800 words): 15%%
- Contact Info Completeness (email, phone, location): 15%%
- Format Cleanliness (based on structure): 20%%

Provide a list of 3-5 concise, actionable suggestions for improvement.

%s

Resume Data:
---
%s
---

Return the result as a JSON object.`,
}

// ScoreJobContextTemplate is inserted into the score prompt when a job
// description accompanies the request
const ScoreJobContextTemplate = `A job description has been provided. Tailor your keyword analysis to it. Identify keywords present in both the resume and description, and keywords missing from the resume.

Job Description:
---
%s
---`

// ScoreNoJobContext is used when no job description accompanies the request
const ScoreNoJobContext = `No job description provided. Perform a general analysis.`

// PromptConfig holds configuration for customizable prompts
type PromptConfig struct {
	SystemPrompts SystemPrompts `json:"systemPrompts"`
	UserPrompts   UserPrompts   `json:"userPrompts"`
}

// GetDefaultPromptConfig returns the default prompt configuration
func GetDefaultPromptConfig() PromptConfig {
	return PromptConfig{
		SystemPrompts: DefaultSystemPrompts,
		UserPrompts:   DefaultUserPrompts,
	}
}

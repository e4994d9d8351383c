package openai

import "fmt"

// Message is a single chat message.
type Message struct {
	Role    string
	Content string
}

const systemPrompt = "You extract resume fields and output strict JSON only."

const extractionTemplate = `You are a resume information extraction assistant. Extract the fields below from the resume text and output strictly a JSON object (JSON only, no other text).

Fields:
- name
- school
- major
- degree
- grad_year (graduation year, integer)
- phone
- email
- skills (array of key skills found in the resume)

Use null for missing fields.

Resume text:
%s`

// BuildExtractionPrompt builds the chat messages for a field-extraction call.
func BuildExtractionPrompt(resumeText string) []Message {
	return []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf(extractionTemplate, resumeText)},
	}
}

// BuildFixPrompt appends the corrective instruction after a non-JSON reply.
func BuildFixPrompt(messages []Message, badReply string) []Message {
	out := make([]Message, 0, len(messages)+2)
	out = append(out, messages...)
	out = append(out,
		Message{Role: "assistant", Content: badReply},
		Message{Role: "user", Content: "Your previous output was not valid JSON. Output only a valid JSON object."},
	)
	return out
}

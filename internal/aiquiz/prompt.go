package aiquiz

import "fmt"

const systemPrompt = `
You write educational multiple-choice questions for a quiz application.

General rules:
1. Only write questions about study subjects (mathematics, physics, chemistry, biology, history, geography, literature, languages and similar).
2. Every question has exactly one correct answer.
3. Every question has:
   - "text": the question itself
   - "choices": 4 plausible options, the correct one included, without letter prefixes
   - "correctAnswerIndex": zero-based index of the correct option in "choices"
   - "explanation": a short, objective explanation of why the answer is correct

Expected JSON:

[
  {
    "text": "<question>",
    "choices": ["...", "...", "...", "..."],
    "correctAnswerIndex": 2,
    "explanation": "<short explanation>"
  }
]

Quality guidelines:
- Do not make the correct answer obvious. Options share length and structure, and wrong options are plausible.
- Difficulty:
  - easy: basic concepts or direct definitions.
  - medium: applying or interpreting concepts.
  - hard: analysis, deduction or calculation.
- Never reveal the answer in the question text.
- Always return pure, valid JSON with no text outside it.
- If the topic is not educational, return an empty array: []
`

func BuildUserPrompt(req DraftRequest) string {
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = "easy"
	}

	extra := ""
	if req.Context != "" {
		extra = fmt.Sprintf("Use this context to frame the questions: %s. ", req.Context)
	}

	return fmt.Sprintf(
		"Write %d multiple-choice questions about %q at %q difficulty. %s"+
			"Follow the format from the system prompt and keep every option plausible.",
		clampCount(req.Count), req.Topic, difficulty, extra,
	)
}

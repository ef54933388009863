package assistant

import (
	"fmt"

	"github.com/studypal/backend/internal/models"
)

func FlashcardSystemPrompt() string {
	return "You are a study assistant helping students create flashcards from their notes."
}

// BuildFlashcardPrompt asks for 5-10 front/back cards as a bare JSON array.
func BuildFlashcardPrompt(notes string, subject models.Subject) string {
	topic := "a topic"
	if subject != "" {
		topic = string(subject)
	}

	return fmt.Sprintf(`Given the following study notes about %s, create 5-10 flashcards.

Each flashcard should have:
- A clear question or term on the front
- A concise but complete answer or definition on the back

Return ONLY a JSON array in this exact format, with no other text:
[
  {"front": "Question or term here", "back": "Answer or definition here"},
  {"front": "Question or term here", "back": "Answer or definition here"}
]

Study notes:
%s`, topic, notes)
}

func SummarySystemPrompt() string {
	return "You are a study assistant helping students understand their study materials."
}

func BuildSummaryPrompt(text, style string) string {
	var styleInstruction string
	switch style {
	case "bullets":
		styleInstruction = "Format the summary as bullet points."
	case "eli5":
		styleInstruction = "Explain it like I'm 5 years old. Use simple words and fun examples."
	case "detailed":
		styleInstruction = "Provide a detailed summary with key concepts explained."
	default:
		styleInstruction = "Format the summary as clear bullet points."
	}

	return fmt.Sprintf(`Summarize the following text for a student. %s

Keep the summary concise but make sure to include all the key points and important information.

Text to summarize:
%s

Summary:`, styleInstruction, text)
}

func ExplainSystemPrompt(subject models.Subject) string {
	topic := "their studies"
	if subject != "" {
		topic = string(subject)
	}
	return fmt.Sprintf("You are a friendly and encouraging tutor helping a middle school or high school student understand %s.", topic)
}

func BuildExplainPrompt(question string) string {
	return fmt.Sprintf(`The student is asking: %q

Please explain this in a way that:
1. Is easy to understand for a young student
2. Uses simple examples when helpful
3. Breaks down complex ideas into smaller parts
4. Is encouraging and supportive

Keep your response concise but thorough. If it helps, use bullet points or numbered steps.

Your explanation:`, question)
}

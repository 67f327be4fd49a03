package services

import (
	"fmt"

	"gollmf-backend/internal/models"
)

const gameSystemPrompt = "You are the opponent in GOLLMF, a word game where players try to get you to say " +
	"specific phrases using as few words as possible. Respond naturally to what the player says. " +
	"Keep your responses concise and helpful."

const targetClauseFormat = " The player is trying to get you to say the phrase \"%s\". " +
	"Do not say it unless the player's prompts genuinely lead you to it."

// systemPrompt returns the game framing, with a target clause only when a
// target phrase is set.
func systemPrompt(targetPhrase string) string {
	if targetPhrase == "" {
		return gameSystemPrompt
	}
	return gameSystemPrompt + fmt.Sprintf(targetClauseFormat, targetPhrase)
}

// buildMessages returns system, then history in caller order, then the
// prompt. The result never aliases history.
func buildMessages(req models.ChatRequest) []models.ChatMessage {
	messages := make([]models.ChatMessage, 0, len(req.ConversationHistory)+2)
	messages = append(messages, models.ChatMessage{Role: models.RoleSystem, Content: systemPrompt(req.TargetPhrase)})
	messages = append(messages, req.ConversationHistory...)
	messages = append(messages, models.ChatMessage{Role: models.RoleUser, Content: req.Prompt})
	return messages
}

package ai

import "fmt"

// SystemInstruction - фиксированная системная инструкция для модели.
const SystemInstruction = "You are a marketing expert. Generate content based on the user's request."

// Instructions - пара сообщений, отправляемых модели.
type Instructions struct {
	System string
	User   string
}

// BuildInstructions формирует детерминированную пару инструкций.
// Тип и запрос вставляются без изменений.
func BuildInstructions(taskType, prompt string) Instructions {
	return Instructions{
		System: SystemInstruction,
		User:   fmt.Sprintf("Type: %s\nRequest: %s", taskType, prompt),
	}
}

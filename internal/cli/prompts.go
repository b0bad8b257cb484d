package cli

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

// PromptForUserID prompts for the user handle the session is filed under
func PromptForUserID() (string, error) {
	var userID string
	prompt := &survey.Input{
		Message: "Who is chatting? (user id):",
		Help:    "Conversation history is kept per user id",
		Default: "local",
	}

	err := survey.AskOne(prompt, &userID, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(val.(string))
		if len(str) == 0 {
			return fmt.Errorf("user id cannot be empty")
		}
		matched, _ := regexp.MatchString(`^[a-zA-Z0-9._@-]+$`, str)
		if !matched {
			return fmt.Errorf("invalid user id (use letters, numbers, dots, hyphens)")
		}
		return nil
	}))

	if err != nil {
		return "", err
	}

	return strings.TrimSpace(userID), nil
}

// PromptForMessage prompts for the next chat message
func PromptForMessage() (string, error) {
	var message string
	prompt := &survey.Input{
		Message: "You:",
		Help:    "Ask about a stock, compare symbols, or type 'exit' to quit",
	}

	err := survey.AskOne(prompt, &message)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(message), nil
}

// PromptForConfirmation asks a yes/no question
func PromptForConfirmation(message string) (bool, error) {
	var confirmed bool
	prompt := &survey.Confirm{
		Message: message,
		Default: true,
	}

	err := survey.AskOne(prompt, &confirmed)
	return confirmed, err
}

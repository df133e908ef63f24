package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to rsvpbridge! Let's connect your WhatsApp number.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Phone number id.
	phonePrompt := promptui.Prompt{
		Label:    "WhatsApp phone number ID",
		Validate: required("phone number ID"),
	}
	phoneID, err := phonePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("phone number id: %w", err)
	}
	cfg.PhoneNumberID = phoneID

	// 2. Access token.
	tokenPrompt := promptui.Prompt{
		Label: "Access token (leave blank to use WA_ACCESS_TOKEN)",
		Mask:  '*',
	}
	accessToken, err := tokenPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("access token: %w", err)
	}
	cfg.AccessToken = accessToken

	// 3. Verify token.
	verifyPrompt := promptui.Prompt{
		Label:    "Webhook verify token",
		Validate: required("verify token"),
	}
	verifyToken, err := verifyPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}
	cfg.VerifyToken = verifyToken

	// 4. Port.
	portPrompt := promptui.Prompt{
		Label:    "Listen port",
		Default:  strconv.Itoa(cfg.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(strings.TrimSpace(portStr))

	// 5. Trigger phrase.
	triggerPrompt := promptui.Prompt{
		Label:    "Trigger phrase",
		Default:  cfg.TriggerPhrase,
		Validate: required("trigger phrase"),
	}
	trigger, err := triggerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("trigger phrase: %w", err)
	}
	cfg.TriggerPhrase = trigger

	if cfg.AccessToken == "" {
		fmt.Println("\nNote: Set WA_ACCESS_TOKEN in your environment before running rsvpbridge serve.")
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func required(field string) promptui.ValidateFunc {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validatePort(s string) error {
	p, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("port must be a number between 1 and 65535")
	}
	return nil
}

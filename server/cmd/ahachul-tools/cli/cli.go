package cli

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

var Stderr = log.New(os.Stderr, "", 0)
var Stdout = log.New(os.Stdout, "", 0)

func Exit(err error) {
	if err != nil {
		Stderr.Println(err)
		os.Exit(1)
	}
	os.Exit(0)
}

// PrintJSON writes v to stdout as indented JSON.
func PrintJSON(v interface{}) error {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling output: %w", err)
	}
	Stdout.Println(string(buf))
	return nil
}

// AskForConfirmation prompts the user for an 'are you sure' response. The user must type a capital "Y"
// to confirm; "n", "N", "no", "No" and "NO" decline, and anything else asks again.
// Returns true without prompting when skipConfirmation is set.
func AskForConfirmation(prompt string, skipConfirmation bool) bool {
	if skipConfirmation {
		return true
	}

	Stdout.Printf("%s (please type Y or N): ", prompt)
	var response string
	_, err := fmt.Scanln(&response)
	if err != nil {
		Stdout.Printf("Error reading confirmation response: %s", err)
		return false
	}

	switch response {
	case "Y":
		return true
	case "n", "N", "no", "No", "NO":
		return false
	default:
		return AskForConfirmation("Please type (capital) Y for Yes or N for No and press enter", false)
	}
}

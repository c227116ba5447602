package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/jobboard/internal/http"
)

const deletePrompt = "Delete this?"

func (a *app) deleteCmd() *cobra.Command {
	var yes bool

	cmd := a.newRequestCmd(http.MethodDelete, func() error {
		if yes {
			return nil
		}
		ok, err := a.confirm(deletePrompt)
		if err != nil {
			return err
		}
		if !ok {
			return errDeclined
		}
		return nil
	})
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// surveyConfirm asks message with a Yes/No choice on the terminal.
func surveyConfirm(message string) (bool, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return false, fmt.Errorf("%s needs an interactive terminal; pass --yes to skip the prompt", message)
	}

	answer := ""
	prompt := &survey.Select{
		Message: message,
		Options: []string{"Yes", "No"},
		Default: "No",
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return false, nil
		}
		return false, err
	}
	return answer == "Yes", nil
}

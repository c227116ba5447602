package cli

import (
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/jobboard/internal/http"
)

func (a *app) postCmd() *cobra.Command {
	return a.newRequestCmd(http.MethodPost, nil)
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/jobboard/internal/http"
)

func (a *app) getCmd() *cobra.Command {
	return a.newRequestCmd(http.MethodGet, nil)
}

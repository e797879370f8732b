package cli

import (
	"encoding/json"
	"errors"
	"os"

	"code-assist/internal/adapter/rest"
	"code-assist/internal/di"
	"code-assist/internal/domain"

	"github.com/spf13/cobra"
)

// ErrBackendUnavailable is returned by the ask command when retrieval fails.
var ErrBackendUnavailable = errors.New("search backend error")

var (
	askSnippet  string
	askFilePath string
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Run one retrieval and print the result",
	Long: `Run one retrieval against the configured backend and print the same JSON
body /ask would return. Logs go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := di.NewApplicationComponents(cfg, newLogger(os.Stderr))
		if err != nil {
			return err
		}

		outcome := app.AskUsecase.Execute(cmd.Context(), domain.Query{Snippet: askSnippet, FilePath: askFilePath})

		var resp rest.AskResponse
		switch outcome.Kind {
		case domain.OutcomeFound:
			resp.Result = outcome.Content
		case domain.OutcomeNotFound:
			resp.Result = domain.NotFoundMessage
		default:
			return ErrBackendUnavailable
		}
		return json.NewEncoder(cmd.OutOrStdout()).Encode(resp)
	},
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVar(&askSnippet, "snippet", "", "code snippet to match against indexed content")
	askCmd.Flags().StringVar(&askFilePath, "file-path", "", "path of the file the snippet came from")
}

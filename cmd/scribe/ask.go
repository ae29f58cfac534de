package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sandevgo/scribe/internal/core"
	"github.com/spf13/cobra"
)

var askSessionID string

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Ask Scribe a single question from the command line",
	Long:  `Runs the full agent pipeline once, prints the answer and exits. Useful for smoke tests and scripting.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		c := buildComponents(ctx)

		sessionID := askSessionID
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		resp := c.agent.Process(ctx, core.Message{
			Text:      strings.Join(args, " "),
			SessionID: sessionID,
		})

		fmt.Println(resp.Response)
		if len(resp.PluginsCalled) > 0 {
			fmt.Printf("\n[plugins: %s]\n", strings.Join(resp.PluginsCalled, ", "))
		}
		return nil
	},
}

func init() {
	askCmd.Flags().StringVarP(&askSessionID, "session", "s", "", "session id to continue a conversation")
	rootCmd.AddCommand(askCmd)
}

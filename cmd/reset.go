package cmd

import (
	"fmt"

	"github.com/senseilabs/sensei/internal/prefs"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear local preferences and the in-progress study state",
	Long:  "Clears the preference file: onboarding state, current topic, modules and chat history. Saved sessions in the database are not touched; use 'sensei sessions delete' for those.",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := prefs.DefaultPath()
		if err != nil {
			return fmt.Errorf("resolve preferences path: %w", err)
		}
		prefs.Open(path).Clear()
		fmt.Println("Local state cleared. The next start begins at onboarding.")
		return nil
	},
}

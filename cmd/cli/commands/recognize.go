package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var recognizeCmd = &cobra.Command{
	Use:   "recognize [image path]",
	Short: "Upload a JPEG image and recognize the face in it",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		recognition, err := apiClient.Recognize(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("error recognizing image: %w", err)
		}

		return printJSON(recognition)
	},
}

// GetRecognizeCmd returns the recognize command
func GetRecognizeCmd() *cobra.Command {
	return recognizeCmd
}

// Package commands implements the facewatch CLI commands.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/facewatch/facewatch/internal/constants"
	"github.com/facewatch/facewatch/pkg/api/v1/client"
	"github.com/facewatch/facewatch/pkg/api/v1/routes"
)

// flag names
const (
	flagServerAddress = "server-address"
)

var (
	// apiClient is the shared API client instance
	apiClient client.Client
	// serverAddress holds the target API server address. Flag parsing sets this.
	serverAddress string
)

// initClient initializes the API client against serverAddress
func initClient() error {
	var err error
	opts := client.DefaultOptions()
	opts.BaseURL = serverAddress

	apiClient, err = client.NewClient(opts)
	return err
}

// resolveServerAddress applies the flag > environment > default precedence
func resolveServerAddress(cmd *cobra.Command) string {
	if cmd.Flags().Changed(flagServerAddress) {
		return serverAddress
	}
	if envAddr := os.Getenv(constants.EnvServerAddress); envAddr != "" {
		return envAddr
	}
	return serverAddress
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&serverAddress, flagServerAddress, "s", routes.DefaultBaseURL, "Address of the Facewatch API server (env: "+constants.EnvServerAddress+")")

	RootCmd.AddCommand(GetPeopleCmd())
	RootCmd.AddCommand(GetRecognizeCmd())
	RootCmd.AddCommand(GetStatsCmd())
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "facewatch",
	Short: "Facewatch CLI - A command line interface for the Facewatch API",
	Long: `Facewatch CLI is a command line tool for recognizing faces and managing
the people the recognizer has learned, through the Facewatch API.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		serverAddress = resolveServerAddress(cmd)
		if serverAddress == "" {
			return fmt.Errorf("server address cannot be empty")
		}
		// The client is built here so every subcommand sees the resolved address
		return initClient()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

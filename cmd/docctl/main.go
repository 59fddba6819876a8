// docctl is the operator CLI for the document intake API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var apiURL string

var rootCmd = &cobra.Command{
	Use:   "docctl",
	Short: "Operate the document intake service",
	Long: `docctl uploads documents into the intake pipeline, inspects their
classification state and runs ad-hoc classifications against a running
intake API.`,
	SilenceUsage: true,
}

func init() {
	defaultURL := os.Getenv("DOCCTL_API")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultURL, "base URL of the intake API")

	rootCmd.AddCommand(uploadCmd())
	rootCmd.AddCommand(getCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(classifyCmd())
	rootCmd.AddCommand(correctCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(statsCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

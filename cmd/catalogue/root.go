package main

import (
	"context"
	"io"
	"time"

	"github.com/ONSdigital/dp-frontend-catalogue-controller/catalogue"
	"github.com/ONSdigital/dp-frontend-catalogue-controller/config"
	"github.com/ONSdigital/dp-frontend-catalogue-controller/searchapi"
	"github.com/ONSdigital/log.go/v2/log"
	"github.com/spf13/cobra"
)

var (
	apiURL  string
	timeout time.Duration
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:          "catalogue",
	Short:        "Dataset catalogue client",
	Long:         "Search, filter and page through the dataset catalogue of the search API.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Namespace = "catalogue"
		if !verbose {
			log.SetDestination(io.Discard, io.Discard)
		}
	},
}

func init() {
	apiDefault, timeoutDefault := "", 10*time.Second
	if cfg, err := config.Get(); err == nil {
		apiDefault, timeoutDefault = cfg.SearchAPIURL, cfg.SearchAPITimeout
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", apiDefault, "base URL of the dataset search API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", timeoutDefault, "timeout for each search request")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "write event logs to stdout")

	rootCmd.AddCommand(searchCmd)
}

// newBrowser returns a browser over the configured search API
func newBrowser(initial catalogue.State) (*catalogue.Browser, error) {
	cli := searchapi.New(apiURL, searchapi.NewHTTPClient(timeout))
	return catalogue.NewBrowser(cli, initial)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

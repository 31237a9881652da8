// Package cmd contains the node client app.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

var (
	url     string
	timeout time.Duration
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&url, "url", "u", "http://localhost:8080", "Url of the node.")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "How long to wait for the node.")
}

var rootCmd = &cobra.Command{
	Use:          "client",
	Short:        "Talk to a proof of work node",
	SilenceUsage: true,
}

// Execute runs the command line.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// =============================================================================

// apiError is the document a node returns for a failed request.
type apiError struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func newClient() *resty.Client {
	return resty.New().
		SetBaseURL(url).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
}

// do performs the request and decodes a successful response into result.
func do(req *resty.Request, method string, path string, result any) error {
	var failure apiError
	resp, err := req.
		SetResult(result).
		SetError(&failure).
		Execute(method, path)
	if err != nil {
		return err
	}

	if resp.IsError() {
		if len(failure.Fields) > 0 {
			return fmt.Errorf("%s: %s: %v", resp.Status(), failure.Error, failure.Fields)
		}
		return fmt.Errorf("%s: %s", resp.Status(), failure.Error)
	}

	return nil
}

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/assetdash/assetdash/internal/common/httpclient"
)

// Execute runs the root command and exits with a non-zero status on error.
// This is called by main.main().
func Execute() {
	o := &rootOptions{}
	rootCmd := newRootCmd(o)

	err := rootCmd.Execute()
	if err != nil {
		if o.jsonOutput {
			kv := map[string]any{
				"result": 0,
				"error":  err.Error(),
			}
			printJSON(os.Stdout, kv)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// needsServer reports whether cmd talks to the catalog server. Commands
// under "config" and "catalog" work offline.
func needsServer(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "config", "catalog", "version":
			return false
		}
	}
	return true
}

func (o *rootOptions) preRunHandlePersistents(cmd *cobra.Command, args []string) error {
	if !needsServer(cmd) || o.client != nil {
		return nil
	}
	if o.serverURL != "" {
		c := &Config{Version: configVersion, ServerURL: MorphServer(o.serverURL)}
		if err := c.ValidateConfig(); err != nil {
			return err
		}
		SetConfig(c)
	} else if err := LoadConfig(o.configFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return errors.New("assetdash config file not found. Configure assetdash with \"assetdash config create\" first")
		}
		return fmt.Errorf("unable to load config file: %w", err)
	}
	o.client = httpclient.NewClient(GetConfig())
	return nil
}

func newVersionCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of assetdash",
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]string{
					"version": Version,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "assetdash %s\n", Version)
			return nil
		},
	}
}

// printResult wraps value in the {"result":1,"value":...} envelope.
func printResult(w io.Writer, value any) error {
	return printJSON(w, map[string]any{
		"result": 1,
		"value":  value,
	})
}

// printRawResult is printResult for a JSON document received from the server.
func printRawResult(w io.Writer, raw []byte) error {
	return printResult(w, json.RawMessage(raw))
}

func printJSON(w io.Writer, data any) error {
	jsonData, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to format JSON output: %v", err)
	}
	fmt.Fprintln(w, string(jsonData))
	return nil
}

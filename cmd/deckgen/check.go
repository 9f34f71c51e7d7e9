package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dgallion1/deckgen/internal/api"
)

const (
	defaultServerURL = "http://localhost:8001"
	checkTimeout     = 5 * time.Second
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that a deckgen server is running and generating",
	Long: `Check sends a one-slide generate_slides call to the server and reports
whether it answered with 200. It exits non-zero otherwise.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("server-url", defaultServerURL, "deckgen server URL")
	checkCmd.Flags().String("api-key", "", "bearer token when the server requires one")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	_ = viper.BindPFlag("server-url", cmd.Flags().Lookup("server-url"))
	_ = viper.BindPFlag("api-key", cmd.Flags().Lookup("api-key"))
	url := viper.GetString("server-url")
	client := &http.Client{Timeout: checkTimeout}
	return checkServer(cmd.Context(), client, url, viper.GetString("api-key"), cmd.OutOrStdout())
}

func checkServer(ctx context.Context, client *http.Client, url, apiKey string, out io.Writer) error {
	body, err := json.Marshal(api.ToolCall{
		Tool: api.ToolGenerateSlides,
		Arguments: api.ToolArguments{
			Topic:      "Test",
			SlideCount: 1,
			Theme:      "modern",
		},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		var opErr *net.OpError
		if errors.As(err, &opErr) && opErr.Op == "dial" {
			fmt.Fprintf(out, "✗ deckgen server is NOT running at %s\n", url)
			return fmt.Errorf("server not reachable: %w", err)
		}
		fmt.Fprintf(out, "✗ Error checking deckgen server: %v\n", err)
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(out, "⚠ deckgen server responded with status %d\n", resp.StatusCode)
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	fmt.Fprintf(out, "✓ deckgen server is running and responding correctly!\n  URL: %s\n", url)
	return nil
}

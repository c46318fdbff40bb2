package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tinyledger-cli",
		Short: "Tiny Ledger CLI tool",
		Long:  `A command line interface for interacting with the Tiny Ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Tiny Ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(accountCmd(), txCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var currency string
	openCmd := &cobra.Command{
		Use:   "open",
		Short: "Open a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, _ := json.Marshal(map[string]string{"currency": currency})
			return doRequest(http.MethodPost, "/api/v1/accounts", body)
		},
	}
	openCmd.Flags().StringVar(&currency, "currency", "EUR", "Account currency code")

	getCmd := &cobra.Command{
		Use:   "get <account-id>",
		Short: "Show account details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doRequest(http.MethodGet, "/api/v1/accounts/"+args[0], nil)
		},
	}

	balanceCmd := &cobra.Command{
		Use:   "balance <account-id>",
		Short: "Show current account balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doRequest(http.MethodGet, "/api/v1/accounts/"+args[0]+"/balance", nil)
		},
	}

	cmd.AddCommand(openCmd, getCmd, balanceCmd)
	return cmd
}

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Transaction operations",
	}

	var (
		amount      string
		description string
	)
	postCmd := &cobra.Command{
		Use:   "post <account-id>",
		Short: "Record a deposit or withdrawal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]any{"amount": json.RawMessage(amount)}
			if description != "" {
				payload["description"] = description
			}
			body, err := json.Marshal(payload)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}
			return doRequest(http.MethodPost, "/api/v1/accounts/"+args[0]+"/transactions", body)
		},
	}
	postCmd.Flags().StringVar(&amount, "amount", "", "Signed decimal amount (negative withdraws)")
	postCmd.Flags().StringVar(&description, "description", "", "Optional description")
	_ = postCmd.MarkFlagRequired("amount")

	var (
		page int
		size int
		sort string
	)
	listCmd := &cobra.Command{
		Use:   "list <account-id>",
		Short: "List transaction history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/accounts/%s/transactions?page=%d&size=%d&sort=%s", args[0], page, size, sort)
			return doRequest(http.MethodGet, path, nil)
		},
	}
	listCmd.Flags().IntVar(&page, "page", 1, "Page number (1-based)")
	listCmd.Flags().IntVar(&size, "size", 10, "Page size")
	listCmd.Flags().StringVar(&sort, "sort", "DESC", "Sort order (ASC or DESC)")

	cmd.AddCommand(postCmd, listCmd)
	return cmd
}

// doRequest sends the request with retries on transport failures. An HTTP
// response of any status is final and never retried.
func doRequest(method, path string, body []byte) error {
	client := &http.Client{Timeout: timeout}

	var resp *http.Response
	operation := func() error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequest(method, baseURL+path, reader)
		if err != nil {
			return backoff.Permanent(err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		resp, err = client.Do(req)
		return err
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)
	if err := backoff.Retry(operation, policy); err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	fmt.Printf("Status: %d\n", resp.StatusCode)
	var parsed any
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		fmt.Println(string(respBody))
		return nil
	}
	printJSON(parsed)
	return nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render response: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

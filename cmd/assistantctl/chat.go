package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	chatCmd := &cobra.Command{
		Use:   "chat MESSAGE...",
		Short: "Send one message to the assistant and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), apiFlag, tokenFlag, strings.Join(args, " "), os.Stdout)
		},
	}
	rootCmd.AddCommand(chatCmd)

	suggestCmd := &cobra.Command{
		Use:   "suggestions",
		Short: "List proactive suggestions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuggestions(cmd.Context(), apiFlag, tokenFlag, os.Stdout)
		},
	}
	rootCmd.AddCommand(suggestCmd)
}

func runChat(ctx context.Context, api, token, message string, out io.Writer) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return fmt.Errorf("message cannot be empty")
	}
	c, err := newClient(api, token)
	if err != nil {
		return err
	}
	reply, err := c.Chat(ctx, message, nil)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, reply)
	return err
}

func runSuggestions(ctx context.Context, api, token string, out io.Writer) error {
	c, err := newClient(api, token)
	if err != nil {
		return err
	}
	sugs, err := c.Suggestions(ctx)
	if err != nil {
		return err
	}
	if len(sugs) == 0 {
		_, err = fmt.Fprintln(out, "no suggestions")
		return err
	}
	for _, s := range sugs {
		if _, err := fmt.Fprintf(out, "[%s] %s\n", s.Type, s.Message); err != nil {
			return err
		}
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	memoryCmd := &cobra.Command{Use: "memory", Short: "Memory operations"}

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent memories, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMemoryList(cmd.Context(), apiFlag, tokenFlag, limit, os.Stdout)
		},
	}
	listCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum entries to return (server default when 0)")
	memoryCmd.AddCommand(listCmd)

	var tags []string
	addCmd := &cobra.Command{
		Use:   "add CONTENT...",
		Short: "Store a note in memory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMemoryAdd(cmd.Context(), apiFlag, tokenFlag, strings.Join(args, " "), tags, os.Stdout)
		},
	}
	addCmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag to attach (repeatable)")
	memoryCmd.AddCommand(addCmd)

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every stored memory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear memory without --yes")
			}
			return runMemoryClear(cmd.Context(), apiFlag, tokenFlag, os.Stdout)
		},
	}
	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the clear")
	memoryCmd.AddCommand(clearCmd)

	rootCmd.AddCommand(memoryCmd)

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show memory statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd.Context(), apiFlag, tokenFlag, os.Stdout)
		},
	}
	rootCmd.AddCommand(statsCmd)
}

func runMemoryList(ctx context.Context, api, token string, limit int, out io.Writer) error {
	c, err := newClient(api, token)
	if err != nil {
		return err
	}
	entries, err := c.ListMemory(ctx, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		_, err = fmt.Fprintln(out, "no memories")
		return err
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s  %s  %s", e.ID, e.CreatedAt.Local().Format(time.DateTime), e.Content)
		if len(e.Tags) > 0 {
			line += "  [" + strings.Join(e.Tags, ",") + "]"
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

func runMemoryAdd(ctx context.Context, api, token, content string, tags []string, out io.Writer) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return fmt.Errorf("content cannot be empty")
	}
	c, err := newClient(api, token)
	if err != nil {
		return err
	}
	e, err := c.Remember(ctx, content, tags)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "remembered %s\n", e.ID)
	return err
}

func runMemoryClear(ctx context.Context, api, token string, out io.Writer) error {
	c, err := newClient(api, token)
	if err != nil {
		return err
	}
	n, err := c.ClearMemory(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "removed %d memories\n", n)
	return err
}

func runStats(ctx context.Context, api, token string, out io.Writer) error {
	c, err := newClient(api, token)
	if err != nil {
		return err
	}
	st, err := c.Stats(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "memories: %d\n", st.Memories)
	return err
}

package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached checksums",
	Long:  "List every cached checksum with its recorded value, sorted by value.",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

type listEntry struct {
	checksum string
	value    string
}

func runList(cmd *cobra.Command, args []string) (err error) {
	s, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeStore(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	var entries []listEntry
	for sum, value := range s.AllChecksums() {
		entries = append(entries, listEntry{checksum: sum, value: value})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].value != entries[j].value {
			return entries[i].value < entries[j].value
		}
		return entries[i].checksum < entries[j].checksum
	})

	out := cmd.OutOrStdout()
	for _, e := range entries {
		fmt.Fprintf(out, "%s\t%s\n", e.checksum, e.value)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "(no entries)")
	}

	return nil
}

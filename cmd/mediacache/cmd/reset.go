package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop all cached checksums and perceptual hashes",
	Long:  "Drop all cached checksums and perceptual hashes. Locations are kept. Run backup first to keep a copy.",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) (err error) {
	s, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeStore(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	n := s.ChecksumCount()
	s.ResetChecksums()
	if err := s.Persist(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %d checksums\n", n)
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aweris/mediacache"
)

var checksumCmd = &cobra.Command{
	Use:   "checksum <file>...",
	Short: "Checksum files and report known duplicates",
	Long:  "Compute SHA-256 checksums of the given files, flag files whose content is already cached, and optionally record the new ones.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runChecksum,
}

func init() {
	checksumCmd.Flags().Bool("record", false, "record new checksums in the cache")
	rootCmd.AddCommand(checksumCmd)
}

func runChecksum(cmd *cobra.Command, args []string) (err error) {
	record, _ := cmd.Flags().GetBool("record")

	s, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeStore(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	results, err := mediacache.ChecksumFiles(cmd.Context(), args, viper.GetInt("block_size"), viper.GetInt("concurrency"))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.Err)
			failed++
			continue
		}
		if prev, ok := s.GetChecksum(r.Checksum); ok && prev != r.Path {
			fmt.Fprintf(out, "%s\t%s\tduplicate of %s\n", r.Checksum, r.Path, prev)
			continue
		}
		fmt.Fprintf(out, "%s\t%s\n", r.Checksum, r.Path)
		if record {
			if err := s.PutChecksum(r.Checksum, r.Path, false); err != nil {
				return err
			}
		}
	}

	if record {
		if err := s.Persist(); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be read", failed, len(results))
	}
	return nil
}

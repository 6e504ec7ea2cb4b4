package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aweris/mediacache"
)

var phashCmd = &cobra.Command{
	Use:   "phash <image>...",
	Short: "Compute perceptual hashes of images",
	Long:  "Compute perceptual hashes of the given images. With --record each hash is cached under the image's checksum.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPhash,
}

func init() {
	phashCmd.Flags().Bool("record", false, "record hashes in the cache, keyed by file checksum")
	rootCmd.AddCommand(phashCmd)
}

func runPhash(cmd *cobra.Command, args []string) (err error) {
	record, _ := cmd.Flags().GetBool("record")
	hashSize := viper.GetInt("hash_size")

	s, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeStore(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	out := cmd.OutOrStdout()
	for _, path := range args {
		h, err := mediacache.ComputePerceptualHash(path, hashSize)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\t%s\n", h, path)

		if !record {
			continue
		}
		sum, err := mediacache.ChecksumFile(path, viper.GetInt("block_size"))
		if err != nil {
			return err
		}
		if err := s.PutPerceptualHash(sum, h, false); err != nil {
			return err
		}
	}

	if record {
		return s.Persist()
	}
	return nil
}

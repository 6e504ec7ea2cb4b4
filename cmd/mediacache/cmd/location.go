package cmd

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var locationCmd = &cobra.Command{
	Use:   "location",
	Short: "Manage named locations",
	Long:  "Add named coordinates and look up place names. Use -- before negative coordinates.",
}

var locationAddCmd = &cobra.Command{
	Use:     "add <lat> <lon> <name>",
	Short:   "Add a named location",
	Example: "  mediacache location add -- 48.8584 2.2945 \"Eiffel Tower\"",
	Args:    cobra.ExactArgs(3),
	RunE:    runLocationAdd,
}

var locationFindCmd = &cobra.Command{
	Use:   "find <lat> <lon>",
	Short: "Find the nearest named location",
	Args:  cobra.ExactArgs(2),
	RunE:  runLocationFind,
}

var locationCoordsCmd = &cobra.Command{
	Use:   "coords <name>",
	Short: "Print the coordinates of a named location",
	Args:  cobra.ExactArgs(1),
	RunE:  runLocationCoords,
}

func init() {
	locationFindCmd.Flags().Float64("threshold", 0, "maximum distance in meters (default from config, 3000)")
	viper.BindPFlag("threshold", locationFindCmd.Flags().Lookup("threshold"))

	locationCmd.AddCommand(locationAddCmd, locationFindCmd, locationCoordsCmd)
	rootCmd.AddCommand(locationCmd)
}

func parseCoordinates(latArg, lonArg string) (lat, lon float64, err error) {
	lat, err = strconv.ParseFloat(latArg, 64)
	if err != nil || math.IsNaN(lat) || lat < -90 || lat > 90 {
		return 0, 0, fmt.Errorf("invalid latitude %q", latArg)
	}
	lon, err = strconv.ParseFloat(lonArg, 64)
	if err != nil || math.IsNaN(lon) || lon < -180 || lon > 180 {
		return 0, 0, fmt.Errorf("invalid longitude %q", lonArg)
	}
	return lat, lon, nil
}

func runLocationAdd(cmd *cobra.Command, args []string) (err error) {
	lat, lon, err := parseCoordinates(args[0], args[1])
	if err != nil {
		return err
	}

	s, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeStore(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return s.AddLocation(lat, lon, args[2], true)
}

func runLocationFind(cmd *cobra.Command, args []string) (err error) {
	lat, lon, err := parseCoordinates(args[0], args[1])
	if err != nil {
		return err
	}

	s, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeStore(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	threshold := viper.GetFloat64("threshold")
	if math.IsNaN(threshold) || threshold < 0 {
		return fmt.Errorf("invalid threshold %v", threshold)
	}

	name, ok := s.FindNearestName(lat, lon, threshold)
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "(no match)")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), name)
	return nil
}

func runLocationCoords(cmd *cobra.Command, args []string) (err error) {
	s, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeStore(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	lat, lon, ok := s.FindCoordinates(args[0])
	if !ok {
		return fmt.Errorf("location %q not found", args[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n",
		strconv.FormatFloat(lat, 'f', -1, 64), strconv.FormatFloat(lon, 'f', -1, 64))
	return nil
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MichalStehlikCz/common-sub000/api"
	"github.com/MichalStehlikCz/common-sub000/config"
	"github.com/MichalStehlikCz/common-sub000/datatype"
)

var convertCmd = &cobra.Command{
	Use:   "convert TYPE VALUE",
	Short: "Parse a literal and print it in every encoding",
	Args:  cobra.ExactArgs(2),
	RunE:  runConvert,
}

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List registered type names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range datatype.ListTypes() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	convertCmd.Flags().String("from", api.FormatIso, "input encoding: iso or provys")
	convertCmd.Flags().StringP("output", "o", "text", "output format: text or json")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(typesCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	from, _ := cmd.Flags().GetString("from")
	output, _ := cmd.Flags().GetString("output")

	dto, err := api.NewHandler(nil, loc).ConvertValue(args[0], args[1], from)
	if err != nil {
		return fmt.Errorf("%s (%s)", err, datatype.Code(err))
	}
	return printConversion(cmd.OutOrStdout(), dto, output)
}

func printConversion(w io.Writer, dto api.ConversionDTO, output string) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(dto)
	case "text":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "type\t%s\n", dto.Type)
		fmt.Fprintf(tw, "kind\t%s\n", dto.Kind)
		fmt.Fprintf(tw, "text\t%s\n", dto.Text)
		fmt.Fprintf(tw, "iso\t%s\n", dto.Iso)
		fmt.Fprintf(tw, "provys\t%s\n", dto.Provys)
		if dto.ZonedIso != "" {
			fmt.Fprintf(tw, "zoned\t%s\n", dto.ZonedIso)
		}
		return tw.Flush()
	}
	return fmt.Errorf("unknown output format %q", output)
}

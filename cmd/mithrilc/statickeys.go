package main

import (
	"encoding/json"
	"fmt"

	"github.com/emre-synnada/mithril"
	"github.com/spf13/cobra"
)

var (
	staticKeysInputsPath string
	staticKeysJSON       bool
)

var staticKeysCmd = &cobra.Command{
	Use:   "static-keys <description.json>",
	Short: "Print only the static_keys result of inference",
	Args:  cobra.ExactArgs(1),
	RunE:  runStaticKeys,
}

func init() {
	staticKeysCmd.Flags().StringVar(&staticKeysInputsPath, "static-inputs", "", "JSON file of key -> concrete dim list overrides")
	staticKeysCmd.Flags().BoolVar(&staticKeysJSON, "json", false, "emit a JSON array instead of one key per line")
}

func runStaticKeys(cmd *cobra.Command, args []string) error {
	raw, err := readDescription(args[0])
	if err != nil {
		return err
	}
	overrides, err := readStaticInputs(staticKeysInputsPath)
	if err != nil {
		return err
	}

	log := newLogger()
	defer log.Sync()

	report, err := mithril.Infer(raw, overrides, log)
	if err != nil {
		return err
	}

	if staticKeysJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		return enc.Encode(report.StaticKeys)
	}
	for _, key := range report.StaticKeys {
		fmt.Fprintln(cmd.OutOrStdout(), key)
	}
	return nil
}

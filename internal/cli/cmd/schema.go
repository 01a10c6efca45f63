package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/tiler/internal/cli/styles"
	"github.com/bnema/tiler/internal/infrastructure/config"
)

var schemaOut string

var schemaCmd = &cobra.Command{
	Use:       "schema [config|layout]",
	Short:     "Print or write a JSON schema",
	Long:      `Print the JSON schema of the configuration file or of layout files. With --out the schema is written into that directory instead.`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(config.SchemaConfig), string(config.SchemaLayout)},
	RunE:      runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().StringVarP(&schemaOut, "out", "o", "", "directory to write <kind>.schema.json into")
}

func runSchema(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	kind := config.SchemaConfig
	if len(args) == 1 {
		kind = config.SchemaKind(args[0])
	}

	if schemaOut == "" {
		data, err := config.GenerateSchema(kind)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(os.Stdout, string(data))
		return err
	}

	path, err := config.GenerateSchemaFile(kind, schemaOut)
	if err != nil {
		return err
	}
	fmt.Println(styles.NewLayoutRenderer(a.Theme).RenderPath("Schema written to", path))
	return nil
}

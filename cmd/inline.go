// Package cmd implements the command-line interface for storyline-cli.
package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/storyline-cli/storyline/filesystem"
	"github.com/storyline-cli/storyline/inline"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("owner", "O", "", "Show only stories whose owner name matches the given filter")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")
}

// inlineCmd executes the application in non-interactive, scriptable inline mode.
var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Execute the application in non-interactive, scriptable inline mode",
	Long: `Fetch the current story feed and print it without entering the interactive viewer.

The plain output lists each owner with their active stories, newest last,
marking stories that were already watched. The json flag switches to a
structured form suitable for scripting; use the schema subcommand to
inspect its shape.`,
	Run: func(cmd *cobra.Command, args []string) {
		output := lo.Must(cmd.Flags().GetString("output"))

		var writer io.Writer
		if output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer file.Close()
			writer = file
		} else {
			writer = os.Stdout
		}

		options := &inline.Options{
			Owner: lo.Must(cmd.Flags().GetString("owner")),
			JSON:  lo.Must(cmd.Flags().GetBool("json")),
			Out:   writer,
		}

		handleErr(inline.Run(context.Background(), options))
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
}

// inlineSchemaCmd generates the JSON schema for structured inline mode output.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema for structured inline mode output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "output", "owneroutput", "storyoutput":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		schema := reflector.Reflect(&inline.Output{})
		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}

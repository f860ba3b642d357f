package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lehigh-university-libraries/jatstemplate/host"
	"github.com/lehigh-university-libraries/jatstemplate/jats"
	"github.com/lehigh-university-libraries/jatstemplate/mapping"
	"github.com/lehigh-university-libraries/jatstemplate/record"
	"github.com/lehigh-university-libraries/jatstemplate/textparser"
)

var renderOutput string

var renderCmd = &cobra.Command{
	Use:   "render [record.yaml]",
	Short: "Render a record as JATS XML",
	Long: `Render one article record as a JATS 1.2 document.

The record is read from the named file or from stdin. Galley files named in
the record are read from --files-dir to build the article body. Output goes to
stdout unless --output is set.

Examples:
  jatstemplate render article.yaml
  jatstemplate render article.yaml --pretty -o article.xml
  cat article.yaml | jatstemplate render --files-dir ./files`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file (default: stdout)")
	renderCmd.Flags().Bool("pretty", false, "Indent the XML output")
	mustBind("pretty", renderCmd.Flags().Lookup("pretty"))
}

func runRender(cmd *cobra.Command, args []string) (err error) {
	var doc *record.Document
	if len(args) == 1 {
		doc, err = record.LoadFile(args[0])
	} else {
		doc, err = record.Decode(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("loading record: %w", err)
	}

	store := record.NewStore(viper.GetString("files_dir"))
	store.Add(doc)

	messages, err := loadMessages(viper.GetString("messages_dir"))
	if err != nil {
		return err
	}

	gen := newGenerator(store, viper.GetString("base_url"), messages)
	gen.Options.Pretty = viper.GetBool("pretty")

	out, err := gen.Generate(cmd.Context(), &doc.Record)
	if err != nil {
		return fmt.Errorf("rendering submission %d: %w", doc.Submission.ID, err)
	}

	var output io.Writer = cmd.OutOrStdout()
	if renderOutput != "" {
		f, cerr := os.Create(renderOutput)
		if cerr != nil {
			return fmt.Errorf("creating output file: %w", cerr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing output file: %w", cerr)
			}
		}()
		output = f
	}

	if _, err = output.Write(out); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	slog.Debug("rendered article", "submission", doc.Submission.ID, "bytes", len(out))
	return nil
}

// newGenerator wires a generator to a local store. Without a base URL no
// links are written.
func newGenerator(store *record.Store, baseURL string, messages *mapping.Catalog) *jats.Generator {
	var urls host.URLDispatcher
	if baseURL != "" {
		urls = record.URLs{BaseURL: baseURL}
	}
	return &jats.Generator{
		Files:       store,
		FileService: store,
		Citations:   store,
		URLs:        urls,
		Parsers:     textparser.DefaultRegistry,
		Messages:    messages,
		Logger:      slog.Default(),
	}
}

// loadMessages returns the embedded message catalog with the YAML files in
// dir merged over it. An empty dir keeps the embedded messages.
func loadMessages(dir string) (*mapping.Catalog, error) {
	catalog, err := mapping.NewCatalog()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return catalog, nil
	}
	if err := catalog.LoadFromDirectory(dir); err != nil {
		return nil, fmt.Errorf("loading messages from %s: %w", dir, err)
	}
	slog.Debug("loaded messages", "dir", dir, "locales", catalog.Locales())
	return catalog, nil
}

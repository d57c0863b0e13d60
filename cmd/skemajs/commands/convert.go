package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reoring/skemajs"
	"github.com/reoring/skemajs/def"
	"github.com/reoring/skemajs/internal/config"
	"github.com/reoring/skemajs/jsonschema"
	"github.com/reoring/skemajs/kubeopenapi"
	"github.com/reoring/skemajs/verify"
)

func AddConvertCommand(rootCmd *cobra.Command) {
	convertCmd := &cobra.Command{
		Use:   "convert [FILE]",
		Short: "Convert an OpenAPI schema or CRD to JSON Schema or OpenAPI 3.0",
		Long: `Convert reads an OpenAPI v3 schema, an openAPIV3Schema block or a
CustomResourceDefinition (JSON or YAML), imports it into a definition graph
and writes the converted document to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: runConvert,
	}

	f := convertCmd.Flags()
	f.String("target", config.DefaultTarget, "Output dialect: jsonSchema7 or openApi3")
	f.String("ref-strategy", config.DefaultRefStrategy, "Repeated definitions: root, relative or none")
	f.String("name", "", "Place the root under the definitions container with this name")
	f.String("definitions-key", skemajs.DefinitionsKey, "Definitions container key: definitions or $defs")
	f.String("base-path", config.DefaultBasePath, "Base of rendered references, for example #/components/schemas")
	f.Int("max-depth", 0, "Maximum definition nesting (0 selects the default)")
	f.StringP("output", "o", config.DefaultOutput, "Output format: json or yaml")
	f.Bool("verify", false, "Check the produced document against its dialect")
	f.String("kind", "", "Select the CRD with this spec.names.kind from a bundle")
	f.String("crd-name", "", "Select the CRD with this metadata.name from a bundle")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	log, flush, err := newLogger(cfg.Verbose)
	if err != nil {
		return err
	}
	defer flush()
	if cfg.FileUsed != "" {
		log.V(1).Info("using config file", "path", cfg.FileUsed)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	g, root, idiag, err := importSchema(data, cfg)
	if err != nil {
		return err
	}
	for _, w := range idiag.Warnings() {
		log.Info("import warning", "file", args[0], "detail", w)
	}

	opts := cfg.Options()
	opts.Logger = log
	doc, d, err := skemajs.Convert(g, root, opts)
	if err != nil {
		return err
	}
	for _, it := range d.Issues() {
		log.Info(it.Message, "code", it.Code, "path", it.Path)
	}

	if cfg.Verify {
		if err := check(cmd.Context(), doc, opts); err != nil {
			return err
		}
		log.V(1).Info("document verified", "target", cfg.Target)
	}

	out, err := render(doc, cfg.Output)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func importSchema(data []byte, cfg *config.Config) (*def.Graph, def.ID, kubeopenapi.Diag, error) {
	opts := kubeopenapi.Options{DefaultMode: kubeopenapi.DefaultAnnotate}
	switch {
	case cfg.Kind != "":
		return kubeopenapi.ImportYAMLForCRDKind(data, cfg.Kind, opts)
	case cfg.CRDName != "":
		return kubeopenapi.ImportYAMLForCRDName(data, cfg.CRDName, opts)
	}
	return kubeopenapi.ImportYAML(data, opts)
}

func check(ctx context.Context, doc *jsonschema.Schema, opts skemajs.Options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Target == skemajs.TargetOpenAPI3 {
		return verify.OpenAPI3(ctx, doc)
	}
	return verify.Draft7(doc)
}

func render(doc *jsonschema.Schema, format string) ([]byte, error) {
	switch format {
	case "json", "":
		b, err := doc.JSON()
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case "yaml":
		return doc.YAML()
	}
	return nil, fmt.Errorf("unknown output format %q (want json or yaml)", format)
}

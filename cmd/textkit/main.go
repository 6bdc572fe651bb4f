package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mehditeymorian/textkit/internal/codec"
	"github.com/mehditeymorian/textkit/internal/jsondom"
	"github.com/mehditeymorian/textkit/internal/jsontools"
	"github.com/mehditeymorian/textkit/internal/report"
	"github.com/mehditeymorian/textkit/internal/textio"
	"github.com/mehditeymorian/textkit/internal/unicodex"
)

const (
	checkUsage    = "textkit check <file.json> [--encoding enc] [--format pretty|json]"
	formatUsage   = "textkit format <file.json> [--pretty] [--out file] [--encoding enc] [--bom]"
	diffUsage     = "textkit diff <left.json> <right.json> [--all] [--ignore-case] [--format pretty|json]"
	generateUsage = "textkit generate [--depth n] [--children n] [--strlen n] [--seed n] [--config file.yaml] [--pretty]"
	convertUsage  = "textkit convert <in> <out> --from enc --to enc [--bom]"
)

type cliExitError struct {
	code  int
	msg   string
	usage string
}

func (e *cliExitError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	if e.usage != "" {
		return e.usage
	}
	return fmt.Sprintf("exit code %d", e.code)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		var exitErr *cliExitError
		if errors.As(err, &exitErr) {
			if exitErr.msg != "" {
				_, _ = fmt.Fprintln(stderr, exitErr.msg)
			}
			if exitErr.usage != "" {
				_, _ = fmt.Fprintln(stderr, strings.TrimSpace(exitErr.usage))
			}
			return exitErr.code
		}
		_, _ = fmt.Fprintln(stderr, err.Error())
		return 2
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "textkit",
		Short:         "JSON and text encoding toolkit",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.WarnLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			logger = zerolog.New(zerolog.ConsoleWriter{Out: stderr}).Level(level).With().Timestamp().Logger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return &cliExitError{code: 2, usage: rootUsage()}
		},
	}
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.AddCommand(newCheckCmd(stdout), newFormatCmd(stdout), newDiffCmd(stdout), newGenerateCmd(stdout), newConvertCmd(stdout))
	return root
}

var logger = zerolog.Nop()

func rootUsage() string {
	return strings.Join([]string{
		"usage:",
		"  " + checkUsage,
		"  " + formatUsage,
		"  " + diffUsage,
		"  " + generateUsage,
		"  " + convertUsage,
	}, "\n")
}

func validateFormat(format string) error {
	if format != "pretty" && format != "json" {
		return fmt.Errorf("invalid format %q: expected pretty or json", format)
	}
	return nil
}

// makePolicy resolves an encoding name to a text I/O policy. The bom flag
// selects generate mode on output encodings.
func makePolicy(encoding string, generateBOM bool) (textio.Policy, error) {
	headers := codec.ConsumeHeader
	if generateBOM {
		headers = codec.GenerateHeader
	}
	switch strings.ToLower(encoding) {
	case "", "plain":
		return textio.PlainPolicy{}, nil
	case "utf8", "utf-8":
		return textio.UTF8Policy{Mode: codec.UTF8Mode{Headers: headers}}, nil
	case "utf16", "utf-16":
		return textio.UTF16Policy{Mode: codec.UTF16Mode{Headers: headers}}, nil
	case "utf16le", "utf-16le":
		return textio.UTF16Policy{Mode: codec.UTF16Mode{Headers: headers, ByteOrder: unicodex.LittleEndian, ByteOrderAssigned: true}}, nil
	case "utf16be", "utf-16be":
		return textio.UTF16Policy{Mode: codec.UTF16Mode{Headers: headers, ByteOrder: unicodex.BigEndian, ByteOrderAssigned: true}}, nil
	case "cp1250":
		return textio.ANSIPolicy{Mode: codec.ANSIMode{Headers: headers, Encoding: codec.CP1250}}, nil
	case "cp1251":
		return textio.ANSIPolicy{Mode: codec.ANSIMode{Headers: headers, Encoding: codec.CP1251}}, nil
	case "cp1252":
		return textio.ANSIPolicy{Mode: codec.ANSIMode{Headers: headers, Encoding: codec.CP1252}}, nil
	default:
		return textio.ANSIPolicy{Mode: codec.ANSIMode{Headers: headers, Encoding: codec.ByName, Name: encoding}}, nil
	}
}

func newCheckCmd(stdout io.Writer) *cobra.Command {
	var format string
	var encoding string
	cmd := &cobra.Command{
		Use:   "check <file.json>",
		Short: "Parse a document and report diagnostics",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return &cliExitError{code: 2, msg: "usage: " + checkUsage}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return &cliExitError{code: 2, msg: err.Error()}
			}
			policy, err := makePolicy(encoding, false)
			if err != nil {
				return &cliExitError{code: 2, msg: err.Error()}
			}
			logger.Debug().Str("file", args[0]).Str("encoding", encoding).Msg("checking document")
			doc := jsondom.NewDocument()
			reader := jsontools.NewDocumentReader(doc)
			reader.SetSourceName(args[0])
			ok := reader.ReadFile(args[0], policy)
			model := report.BuildCheck(args[0], reader.Messages())
			if format == "json" {
				if err := report.WriteJSON(stdout, model); err != nil {
					return &cliExitError{code: 1, msg: fmt.Sprintf("failed to write output: %v", err)}
				}
			} else {
				report.WriteCheckPretty(stdout, model)
			}
			if !ok || reader.Messages().HasErrors() {
				return &cliExitError{code: 1}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "pretty", "stdout format: pretty|json")
	cmd.Flags().StringVar(&encoding, "encoding", "utf8", "input encoding")
	return cmd
}

func newFormatCmd(stdout io.Writer) *cobra.Command {
	var pretty bool
	var out string
	var encoding string
	var bom bool
	cmd := &cobra.Command{
		Use:   "format <file.json>",
		Short: "Rewrite a document, optionally pretty printed",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return &cliExitError{code: 2, msg: "usage: " + formatUsage}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			inPolicy, err := makePolicy(encoding, false)
			if err != nil {
				return &cliExitError{code: 2, msg: err.Error()}
			}
			doc := jsondom.NewDocument()
			reader := jsontools.NewDocumentReader(doc)
			reader.SetSourceName(args[0])
			if !reader.ReadFile(args[0], inPolicy) {
				report.WriteCheckPretty(stdout, report.BuildCheck(args[0], reader.Messages()))
				return &cliExitError{code: 1}
			}
			writer := jsontools.NewDocumentWriter(doc)
			writer.Config.PrettyPrint = pretty
			if out == "" {
				_, _ = io.WriteString(stdout, writer.WriteString())
				_, _ = io.WriteString(stdout, "\n")
				return nil
			}
			outPolicy, err := makePolicy(encoding, bom)
			if err != nil {
				return &cliExitError{code: 2, msg: err.Error()}
			}
			logger.Debug().Str("out", out).Bool("pretty", pretty).Msg("writing document")
			if err := writer.WriteToFile(out, outPolicy); err != nil {
				return &cliExitError{code: 1, msg: fmt.Sprintf("failed to write %s: %v", out, err)}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "pretty print with tab indentation")
	cmd.Flags().StringVar(&out, "out", "", "output file (default stdout)")
	cmd.Flags().StringVar(&encoding, "encoding", "utf8", "input and output encoding")
	cmd.Flags().BoolVar(&bom, "bom", false, "write a byte-order mark")
	return cmd
}

func newDiffCmd(stdout io.Writer) *cobra.Command {
	var all bool
	var ignoreCase bool
	var format string
	var encoding string
	cmd := &cobra.Command{
		Use:   "diff <left.json> <right.json>",
		Short: "Structurally compare two documents",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return &cliExitError{code: 2, msg: "usage: " + diffUsage}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return &cliExitError{code: 2, msg: err.Error()}
			}
			policy, err := makePolicy(encoding, false)
			if err != nil {
				return &cliExitError{code: 2, msg: err.Error()}
			}
			docs := make([]*jsondom.Document, 2)
			for i, path := range args {
				docs[i] = jsondom.NewDocument()
				reader := jsontools.NewDocumentReader(docs[i])
				reader.SetSourceName(path)
				if !reader.ReadFile(path, policy) {
					report.WriteCheckPretty(stdout, report.BuildCheck(path, reader.Messages()))
					return &cliExitError{code: 2}
				}
			}
			options := jsontools.DefaultDiffOptions()
			options.CompareAll = all
			options.CaseSensitive = !ignoreCase
			diff := jsontools.MakeDiffWith(docs[0], docs[1], options)
			model := report.BuildDiff(args[0], args[1], diff)
			if format == "json" {
				if err := report.WriteJSON(stdout, model); err != nil {
					return &cliExitError{code: 1, msg: fmt.Sprintf("failed to write output: %v", err)}
				}
			} else {
				report.WriteDiffPretty(stdout, model)
			}
			if diff.HasDifferences() {
				return &cliExitError{code: 1}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "collect every difference")
	cmd.Flags().BoolVar(&ignoreCase, "ignore-case", false, "compare texts ignoring case")
	cmd.Flags().StringVar(&format, "format", "pretty", "stdout format: pretty|json")
	cmd.Flags().StringVar(&encoding, "encoding", "utf8", "input encoding")
	return cmd
}

// generatorFile is the YAML form of the generator configuration.
type generatorFile struct {
	Depth           int   `yaml:"depth"`
	AvgChildren     int   `yaml:"avg_children"`
	AvgStringLength int   `yaml:"avg_string_length"`
	Seed            int64 `yaml:"seed"`
	NameCharMin     int32 `yaml:"name_char_min"`
	NameCharMax     int32 `yaml:"name_char_max"`
	ValueCharMin    int32 `yaml:"value_char_min"`
	ValueCharMax    int32 `yaml:"value_char_max"`
}

func loadGeneratorConfig(path string) (jsontools.GeneratorConfig, error) {
	cfg := jsontools.DefaultGeneratorConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	var f generatorFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return cfg, err
	}
	if f.Depth > 0 {
		cfg.Depth = f.Depth
	}
	if f.AvgChildren > 0 {
		cfg.AvgChildren = f.AvgChildren
	}
	if f.AvgStringLength > 0 {
		cfg.AvgStringLength = f.AvgStringLength
	}
	if f.Seed != 0 {
		cfg.Seed = f.Seed
	}
	if f.NameCharMin > 0 && f.NameCharMax >= f.NameCharMin {
		cfg.NameCharRange = unicodex.CharRange{Min: f.NameCharMin, Max: f.NameCharMax}
	}
	if f.ValueCharMin > 0 && f.ValueCharMax >= f.ValueCharMin {
		cfg.ValueCharRange = unicodex.CharRange{Min: f.ValueCharMin, Max: f.ValueCharMax}
	}
	return cfg, nil
}

func newGenerateCmd(stdout io.Writer) *cobra.Command {
	var depth, children, strlen int
	var seed int64
	var configPath string
	var pretty bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random document",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return &cliExitError{code: 2, msg: "usage: " + generateUsage}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := jsontools.DefaultGeneratorConfig()
			if configPath != "" {
				loaded, err := loadGeneratorConfig(configPath)
				if err != nil {
					return &cliExitError{code: 2, msg: fmt.Sprintf("failed to load config: %v", err)}
				}
				cfg = loaded
			}
			if depth > 0 {
				cfg.Depth = depth
			}
			if children > 0 {
				cfg.AvgChildren = children
			}
			if strlen > 0 {
				cfg.AvgStringLength = strlen
			}
			if seed != 0 {
				cfg.Seed = seed
			}
			logger.Debug().Int("depth", cfg.Depth).Int64("seed", cfg.Seed).Msg("generating document")
			doc := jsondom.NewDocument()
			gen := jsontools.NewDocumentGenerator(doc)
			gen.Config = cfg
			gen.Run()
			writer := jsontools.NewDocumentWriter(doc)
			writer.Config.PrettyPrint = pretty
			_, _ = io.WriteString(stdout, writer.WriteString())
			_, _ = io.WriteString(stdout, "\n")
			return nil
		},
	}
	cmd.Flags().IntVar(&depth, "depth", 0, "tree depth")
	cmd.Flags().IntVar(&children, "children", 0, "average children per container")
	cmd.Flags().IntVar(&strlen, "strlen", 0, "average string length")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML configuration file")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "pretty print with tab indentation")
	return cmd
}

func newConvertCmd(stdout io.Writer) *cobra.Command {
	var from, to string
	var bom bool
	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Transcode a text file between encodings",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return &cliExitError{code: 2, msg: "usage: " + convertUsage}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			inPolicy, err := makePolicy(from, false)
			if err != nil {
				return &cliExitError{code: 2, msg: err.Error()}
			}
			outPolicy, err := makePolicy(to, bom)
			if err != nil {
				return &cliExitError{code: 2, msg: err.Error()}
			}
			logger.Debug().Str("from", from).Str("to", to).Msg("converting")
			reader, err := textio.NewReaderFromFile(args[0], inPolicy)
			if err != nil {
				return &cliExitError{code: 1, msg: fmt.Sprintf("failed to open %s: %v", args[0], err)}
			}
			defer reader.Close()
			text := reader.ReadAll()
			if err := reader.Err(); err != nil {
				return &cliExitError{code: 1, msg: fmt.Sprintf("failed to decode %s: %v", args[0], err)}
			}
			writer, err := textio.NewWriterToFile(args[1], outPolicy)
			if err != nil {
				return &cliExitError{code: 1, msg: fmt.Sprintf("failed to create %s: %v", args[1], err)}
			}
			writer.WriteRunes(text)
			if err := writer.Close(); err != nil {
				return &cliExitError{code: 1, msg: fmt.Sprintf("failed to write %s: %v", args[1], err)}
			}
			_, _ = fmt.Fprintf(stdout, "converted %s (%d chars) to %s\n", args[0], len(text), args[1])
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "utf8", "input encoding")
	cmd.Flags().StringVar(&to, "to", "utf8", "output encoding")
	cmd.Flags().BoolVar(&bom, "bom", false, "write a byte-order mark")
	return cmd
}

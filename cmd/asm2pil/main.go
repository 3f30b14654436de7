// Command asm2pil lowers an assembly source file into a Polynomial
// Identity Language module.
package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/powdr-labs/asm2pil/internal/asm/ast"
	"github.com/powdr-labs/asm2pil/internal/asm/parser"
	"github.com/powdr-labs/asm2pil/internal/compiler"
	"github.com/powdr-labs/asm2pil/internal/config"
)

var (
	outputDir  string
	configPath string
	degree     int64
	debugAST   bool
	checkOnly  bool

	log = logrus.New()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.Red("error: %s", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asm2pil [flags] source.asm",
		Short: "Lower an assembly source file into a PIL module",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompile,
	}
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "directory to write the generated .pil file to (default: config/current directory)")
	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultFilename, "path to an asm2pil.yaml project file")
	cmd.Flags().Int64Var(&degree, "degree", 0, "default trace degree, used when the source has no leading degree statement (0: use config/built-in default)")
	cmd.Flags().BoolVar(&debugAST, "debug-ast", false, "print the parsed AST as JSON instead of compiling")
	cmd.Flags().BoolVar(&checkOnly, "check", false, "parse and lower the source but do not write output")
	return cmd
}

func runCompile(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if level, parseErr := logrus.ParseLevel(cfg.LogLevel); parseErr == nil {
		log.SetLevel(level)
	}
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	defaultDegree := cfg.Degree
	if degree != 0 {
		defaultDegree = degree
	}

	sourcePath := args[0]
	log.WithField("file", sourcePath).Info("tokenize+parse")
	file, err := os.Open(sourcePath)
	if err != nil {
		return errors.Wrapf(err, "opening %q", sourcePath)
	}
	defer file.Close()

	program, err := parser.Parse(sourcePath, file)
	if err != nil {
		return err
	}

	if debugAST {
		return printAST(program)
	}

	log.Debug("register/instruction declarations, code-line lowering, program materialisation")
	module, err := compiler.CompileWithDefaultDegree(program, defaultDegree)
	if err != nil {
		return err
	}

	log.Debug("render")
	rendered := module.String()

	if checkOnly {
		color.Green("ok: %s compiles to a valid PIL module", sourcePath)
		return nil
	}

	outPath := filepath.Join(outputDir, outputName(sourcePath))
	if err := os.WriteFile(outPath, []byte(rendered), 0o644); err != nil {
		return errors.Wrapf(err, "writing %q", outPath)
	}
	color.Green("wrote %s", outPath)
	return nil
}

func outputName(sourcePath string) string {
	base := filepath.Base(sourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".pil"
}

func printAST(file *ast.File) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(file); err != nil {
		return errors.Wrap(err, "encoding AST")
	}
	return nil
}

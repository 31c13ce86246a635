package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/hdlvibe/vhdlang/internal/analyzer"
	"github.com/hdlvibe/vhdlang/internal/config"
	"github.com/hdlvibe/vhdlang/internal/diagnostics"
	"github.com/hdlvibe/vhdlang/internal/lexer"
	"github.com/hdlvibe/vhdlang/internal/parser"
	"github.com/hdlvibe/vhdlang/internal/pipeline"
)

// runCheck analyzes the project file or the files given on the command line
// and prints every diagnostic, returning an error when any has error
// severity.
func runCheck(projectFile, library string, args []string) error {
	sources, err := collectSources(projectFile, library, args)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("no source files; give files or a %s project file", config.DefaultProjectFile)
	}

	root := analyzer.NewRoot()
	log.Debug("checking sources", "session", root.Session(), "files", len(sources))

	all := diagnostics.NewBag()
	for _, source := range sources {
		data, err := os.ReadFile(source.Path)
		if err != nil {
			return err
		}
		ctx := pipeline.NewContext(source.Path, string(data))
		pipe := pipeline.New(
			&lexer.Processor{},
			&parser.Processor{},
			&analyzer.Processor{Root: root, Library: source.Library},
		)
		ctx = pipe.Run(ctx)
		all.Append(ctx.Diags)
	}

	render(all)
	if all.HasErrors() {
		return fmt.Errorf("analysis failed")
	}
	return nil
}

func collectSources(projectFile, library string, args []string) ([]config.SourceFile, error) {
	if len(args) > 0 {
		var sources []config.SourceFile
		for _, arg := range args {
			sources = append(sources, config.SourceFile{Library: library, Path: arg})
		}
		return sources, nil
	}

	path := projectFile
	if path == "" {
		if _, err := os.Stat(config.DefaultProjectFile); err != nil {
			return nil, nil
		}
		path = config.DefaultProjectFile
	}
	project, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return project.SourceFiles(".")
}

const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorYellow = "\x1b[33m"
	colorCyan   = "\x1b[36m"
)

func render(bag *diagnostics.Bag) {
	colored := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	for _, diag := range bag.Sorted() {
		severity := diag.Severity.String()
		if colored {
			switch diag.Severity {
			case diagnostics.Error:
				severity = colorRed + severity + colorReset
			case diagnostics.Warning:
				severity = colorYellow + severity + colorReset
			default:
				severity = colorCyan + severity + colorReset
			}
		}
		fmt.Printf("%s: %s: %s\n", diag.Pos, severity, diag.Message)
		for _, rel := range diag.Related {
			fmt.Printf("  %s: note: %s\n", rel.Pos, rel.Message)
		}
	}
}

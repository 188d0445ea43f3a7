package main

import (
	"bufio"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v2"

	"github.com/ddadaal/kaleidoscope-go/ast"
	"github.com/ddadaal/kaleidoscope-go/codegen"
	"github.com/ddadaal/kaleidoscope-go/lexer"
	"github.com/ddadaal/kaleidoscope-go/parser"
)

const sourceSuffix = ".kal"
const manifestName = "kaleidoscope.yml"

type kalModule struct {
	Module string `yaml:"Module"`
}

func parseDirectory(dir string) (ast.Program, error) {
	fis, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var program ast.Program
	for _, fi := range fis {
		if !strings.HasSuffix(fi.Name(), sourceSuffix) {
			continue
		}
		handle, err := os.Open(filepath.Join(dir, fi.Name()))
		if err != nil {
			return nil, err
		}

		p := parser.NewParser(lexer.NewLexer(handle))
		prog, err := p.Parse()
		handle.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fi.Name(), err)
		}

		program = append(program, prog...)
	}
	return program, nil
}

func readManifest() (kalModule, error) {
	var doc kalModule
	data, err := ioutil.ReadFile(manifestName)
	if err != nil {
		return doc, err
	}
	err = yaml.Unmarshal(data, &doc)
	return doc, err
}

// repl compiles one line at a time into a shared module, printing the
// IR of whatever each line declared or defined. Errors are reported
// and the next line starts fresh, which is all the resynchronization
// the language needs.
func repl(in io.Reader, out io.Writer) error {
	cc := codegen.NewContext("repl")
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "ready> ")
		if !scanner.Scan() {
			break
		}

		p := parser.NewParser(lexer.NewLexer(strings.NewReader(scanner.Text())))
		prog, err := p.Parse()
		if err != nil {
			fmt.Fprintf(out, "error: %s\n", err)
			continue
		}

		for _, top := range prog {
			switch node := top.(type) {
			case ast.ExternDecl:
				fn, err := cc.CompilePrototype(&node.Proto)
				if err != nil {
					fmt.Fprintf(out, "error: %s\n", err)
					continue
				}
				fmt.Fprintf(out, "read extern:\n%s\n", fn.LLString())
			case ast.FunctionDef:
				fn, err := cc.CompileFunction(&node.Func)
				if err != nil {
					fmt.Fprintf(out, "error: %s\n", err)
					continue
				}
				fmt.Fprintf(out, "read function:\n%s\n", fn.LLString())
			}
		}
	}
	return scanner.Err()
}

func main() {
	app := &cli.App{
		Name:  "kalgo",
		Usage: "kaleidoscope compiler",
		ExitErrHandler: func(context *cli.Context, err error) {
			if err != nil {
				log.Fatalf("error with kalgo: %s", err)
			}
		},
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "init a module in the current directory",
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						return fmt.Errorf("no module name provided")
					}

					out, err := yaml.Marshal(kalModule{Module: name})
					if err != nil {
						return err
					}
					return ioutil.WriteFile(manifestName, out, 0644)
				},
			},
			{
				Name:  "repl",
				Usage: "read, compile and print toplevels interactively",
				Action: func(c *cli.Context) error {
					return repl(os.Stdin, os.Stdout)
				},
			},
			{
				Name:  "build",
				Usage: "build the module in the current directory",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name: "output",
					},
					&cli.BoolFlag{
						Name:  "dump",
						Value: false,
					},
					&cli.BoolFlag{
						Name:  "dump-ast",
						Value: false,
					},
				},
				Action: func(c *cli.Context) error {
					doc, err := readManifest()
					if err != nil {
						fmt.Printf("error reading %s: %s\n", manifestName, err)
						os.Exit(1)
					}
					out := c.String("output")
					if out == "" {
						out = doc.Module
					}

					program, err := parseDirectory("./")
					if err != nil {
						tracerr.PrintSourceColor(tracerr.Wrap(err))
						os.Exit(1)
					}

					if c.Bool("dump-ast") {
						repr.Println(program)
						return nil
					}

					cc := codegen.NewContext(doc.Module)
					if err := cc.CompileProgram(program); err != nil {
						tracerr.PrintSourceColor(tracerr.Wrap(err))
						os.Exit(1)
					}

					if c.Bool("dump") {
						fmt.Println(cc.Module.String())
						return nil
					}

					fi, err := ioutil.TempFile("", "*.ll")
					if err != nil {
						return err
					}
					defer fi.Close()
					if _, err := io.Copy(fi, strings.NewReader(cc.Module.String())); err != nil {
						return err
					}

					cmd := exec.Command("clang", "-o", out, fi.Name())
					cmd.Stdout = os.Stdout
					cmd.Stderr = os.Stderr
					if err := cmd.Run(); err != nil {
						tracerr.PrintSourceColor(tracerr.Wrap(err))
						os.Exit(1)
					}

					return nil
				},
			},
		},
	}
	app.Run(os.Args)
}

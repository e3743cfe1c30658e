// Package main is the main entrypoint to the phan type engine cli.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/pararang/phan/src/builtin"
	"github.com/pararang/phan/src/conf"
)

var (
	sess        *session
	showVersion bool
	execQuery   string
	stubsPath   string
	interactive bool
)

func init() {
	flag.BoolVar(&showVersion, "v", false, "show version information")
	flag.StringVar(&execQuery, "e", "", "evaluate query 'query'")
	flag.StringVar(&stubsPath, "stubs", "", "merge stub tables from a yaml file (default "+conf.DEFAULTSTUBFILE+" when present)")
	flag.BoolVar(&interactive, "i", false, "enter interactive mode after evaluating a query file")
}

func main() {
	if os.Getenv("PHAN_PROFILE") != "" {
		defer runProfiling(os.Getenv("PHAN_PROFILE"))()
	}
	flag.Usage = printUsage
	flag.Parse()

	if stubsPath == "" {
		if _, err := os.Stat(conf.DEFAULTSTUBFILE); err == nil {
			stubsPath = conf.DEFAULTSTUBFILE
		}
	}
	reg := builtin.Default()
	if stubsPath != "" {
		src, err := os.Open(stubsPath)
		checkErr(err)
		classes, functions, err := builtin.ParseStubs(src)
		_ = src.Close()
		checkErr(err)
		reg = reg.Merge(classes, functions)
	}
	sess = &session{registry: reg, out: os.Stdout}

	args := flag.Args()
	if showVersion {
		printVersion()
	}
	if stat, _ := os.Stdin.Stat(); (stat.Mode() & os.ModeCharDevice) == 0 {
		runLines("<stdin>", os.Stdin)
	} else if execQuery != "" {
		runLines("<string>", strings.NewReader(execQuery))
	} else if len(args) == 0 && !showVersion {
		runREPL()
	} else if len(args) > 0 {
		if info, err := os.Stat(args[0]); err == nil && !info.IsDir() {
			src, err := os.Open(args[0])
			checkErr(err)
			defer func() { _ = src.Close() }()
			runLines(args[0], src)
		}
	} else if !showVersion {
		printUsage()
	}
}

func printVersion() {
	fmt.Fprintf(os.Stderr, "%v\n", conf.FullVersion())
}

func printUsage() {
	printVersion()
	fmt.Fprint(os.Stderr, "\nUsage: phan [options] [queries-file]\n")
	flag.PrintDefaults()
}

func checkErr(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// runLines evaluates queries one per line. A failing line is reported with
// its position and the rest of the file still runs; any failure makes the
// whole run exit nonzero.
func runLines(path string, src io.Reader) {
	scanner := bufio.NewScanner(src)
	failed := false
	line := 0
	for scanner.Scan() {
		line++
		if err := sess.run(scanner.Text()); err != nil {
			failed = true
			fmt.Fprintf(os.Stderr, "%v:%v: %v\n", path, line, err)
		}
	}
	checkErr(scanner.Err())
	if interactive {
		runREPL()
	} else if failed {
		os.Exit(1)
	}
}

func runProfiling(filename string) func() {
	f, err := os.Create(filename)
	checkErr(err)
	checkErr(pprof.StartCPUProfile(f))
	return pprof.StopCPUProfile
}

/*
 * synacorvm - Main process.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/synacorvm/internal/command"
	"github.com/rcornwell/synacorvm/internal/disasm"
	"github.com/rcornwell/synacorvm/internal/loader"
	"github.com/rcornwell/synacorvm/internal/reader"
	"github.com/rcornwell/synacorvm/internal/seed"
	"github.com/rcornwell/synacorvm/internal/vm"
	logger "github.com/rcornwell/synacorvm/util/logger"
)

var Logger *slog.Logger

func main() {
	os.Exit(run())
}

// run implements the CLI surface of spec.md §6.2: a positional binary
// path, and --debug/--trace/--log/--seed-input/--help flags. Exit
// codes: 0 clean halt, 1 execution error, 2 usage error.
func run() int {
	optDebug := getopt.BoolLong("debug", 'd', "Enter the interactive debugger")
	optTrace := getopt.BoolLong("trace", 't', "Trace every dispatched instruction to standard error")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optSeedInput := getopt.StringLong("seed-input", 's', "", "Replay this file's bytes into opcode `in` before live stdin")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		return 0
	}

	args := getopt.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: synacorvm [options] <program.bin>")
		getopt.Usage()
		return 2
	}
	binPath := args[0]

	var file *os.File
	if *optLogFile != "" {
		var err error
		file, err = os.Create(*optLogFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error: "+err.Error())
			return 2
		}
		defer file.Close()
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	handler := logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, *optTrace)
	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	program, err := loader.FromFile(binPath)
	if err != nil {
		Logger.Error(err.Error())
		return 1
	}
	Logger.Info("loaded program", "words", len(program))

	m := vm.New()
	m.Load(program)

	var seedFile *os.File
	if *optSeedInput != "" {
		seedFile, err = os.Open(*optSeedInput)
		if err != nil {
			Logger.Error(err.Error())
			return 1
		}
		defer seedFile.Close()
	}
	m.Stdin = seed.New(seedFile, bufio.NewReader(os.Stdin))
	m.Stdout = os.Stdout

	if *optTrace {
		m.Trace = func(pc uint16) {
			text, _ := disasm.One(m.MemoryAt, pc)
			Logger.Debug(text)
		}
	}

	if *optDebug {
		d := command.NewDebugger(m, func(s string) { fmt.Println(s) })
		reader.Console(d)
		return exitCode(m, nil)
	}

	runErr := m.Run()
	return exitCode(m, runErr)
}

// exitCode turns a Run/debugger outcome into the process exit status:
// 0 for a clean halt (opcode halt or empty-stack ret), 1 for any
// execution error returned by Run. The debugger path always passes a
// nil error, since the console reports command errors at the prompt,
// so a debugger session exits 0, including when the user quits
// mid-program.
func exitCode(m *vm.Machine, err error) int {
	if err != nil {
		Logger.Error(err.Error())
		return 1
	}
	_ = m
	return 0
}

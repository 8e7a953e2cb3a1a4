package main

import (
	"os"
	"sync"

	"github.com/mcc-lang/mcc/consts"
	"github.com/mcc-lang/mcc/repl"
	"github.com/mcc-lang/mcc/term"
	"github.com/mcc-lang/mcc/utils"
)

const help = `mcc - a mini c compiler

Usage:
  mcc                        enter the repl
  mcc <file>                 run a .mc source or .mca chunk
  mcc compile <file>         compile source to a .mca chunk
  mcc asm <file>             write x86-64 assembly next to the source
  mcc ast <file>             write the ast as json next to the source
  mcc inspect <file> [path]  query a dumped ast, gjson path syntax
  mcc upgrade                check for a newer release
  mcc version                print version`

func main() {
	if len(os.Args) < 2 {
		wg := &sync.WaitGroup{}
		wg.Add(1)
		go utils.CheckUpgrade(wg)
		repl.Repl(wg)
		return
	}

	switch os.Args[1] {
	case "-v", "version":
		println("mcc v" + consts.VERSION)
	case "-h", "help":
		println(help)
	case "compile":
		compile(fileArg())
	case "asm":
		writeAsm(fileArg())
	case "ast":
		writeAst(fileArg())
	case "inspect":
		query := ""
		if len(os.Args) > 3 {
			query = os.Args[3]
		}
		inspect(fileArg(), query)
	case "upgrade":
		sp := term.NewSpinner()
		sp.SetString("checking releases")
		wg := &sync.WaitGroup{}
		wg.Add(1)
		utils.CheckUpgrade(wg)
		wg.Wait()
		sp.Stop(true)
		term.Suc("[upgrade] done")
	default:
		run(os.Args[1])
	}
}

func fileArg() string {
	if len(os.Args) < 3 {
		term.Error("[mcc] no file given, see `mcc help`")
	}
	return os.Args[2]
}

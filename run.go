package main

import (
	"bytes"
	"errors"
	"os"
	"strings"

	"github.com/mcc-lang/mcc/astchunk"
	"github.com/mcc-lang/mcc/compiler"
	"github.com/mcc-lang/mcc/compiler/ast"
	"github.com/mcc-lang/mcc/compiler/codegen"
	"github.com/mcc-lang/mcc/compiler/parser"
	"github.com/mcc-lang/mcc/consts"
	"github.com/mcc-lang/mcc/interp"
	"github.com/mcc-lang/mcc/logger"
	"github.com/mcc-lang/mcc/term"
	"github.com/mcc-lang/mcc/utils"
)

// compile builds source into an ast chunk next to it and returns the
// compiled function.
func compile(source string) *ast.Function {
	if !utils.Exist(source) {
		term.Error("[compile] file not found: %s", source)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		term.Error("[compile] can't read file: %v", err)
	}

	fn, err := compiler.Compile(string(data), source)
	if err != nil {
		reportSyntax(err)
	}

	compiledData, err := astchunk.Dump(fn, utils.Md5(data))
	if err != nil {
		term.Error("[compile] dump failed: %v", err)
	}
	mca := utils.ChunkPath(source)
	if err = os.WriteFile(mca, compiledData, 0744); err != nil {
		term.Error("[compile] write file failed: %v", err)
	}
	term.Suc("[compile] %s", mca)
	return fn
}

func exec(fn *ast.Function) {
	fn.Body = parser.Optimize(fn.Body)
	ret, err := interp.Exec(fn)
	if err != nil {
		term.Error("[run] %v", err)
	}
	logger.I("[run] returned %d", ret)
	os.Exit(int(ret & 0xff))
}

func runSource(source string) {
	mca := utils.ChunkPath(source)
	if utils.Exist(mca) {
		runChunk(mca)
		return
	}
	exec(compile(source))
}

func runChunk(mca string) {
	if !utils.Exist(mca) {
		term.Error("[run] file not found: %s", mca)
	}

	data, err := os.ReadFile(mca)
	if err != nil {
		term.Error("[run] can't read file: %v", err)
	}

	source := utils.SourcePath(mca)
	srcData := make([]byte, 0)
	srcExist := utils.Exist(source)
	if srcExist {
		srcData, err = os.ReadFile(source)
		if err != nil {
			term.Error("[run] can't read file: %v", err)
		}
	}

	fn, err := astchunk.Verify(data, srcData)
	if err != nil {
		if err == astchunk.ErrMismatchedHash {
			if srcExist {
				term.Info("[run] source changed, recompiling %s", source)
				fn = compile(source)
			} else {
				term.Warn("[run] source not found, running stale chunk: %s", mca)
			}
		} else if strings.HasPrefix(err.Error(), astchunk.MismatchVersionPrefix) {
			if srcExist {
				term.Info("[run] mismatch version, recompiling %s", source)
				fn = compile(source)
			} else {
				term.Error("[run] mismatch version and source not found: %s", source)
			}
		} else {
			term.Error("[run] chunk verify failed: %v", err)
		}
	}

	exec(fn)
}

func run(file string) {
	if strings.HasSuffix(file, consts.SourceExt) {
		runSource(file)
	} else if strings.HasSuffix(file, consts.ChunkExt) {
		runChunk(file)
	} else {
		term.Error("[run] not a %s or %s file: %s", consts.SourceExt, consts.ChunkExt, file)
	}
}

// writeAsm compiles source and writes x86-64 assembly next to it.
func writeAsm(source string) {
	if !utils.Exist(source) {
		term.Error("[asm] file not found: %s", source)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		term.Error("[asm] can't read file: %v", err)
	}

	fn, err := compiler.CompileOptimized(string(data), source)
	if err != nil {
		reportSyntax(err)
	}

	var buf bytes.Buffer
	if err = codegen.Gen(fn, &buf); err != nil {
		term.Error("[asm] %v", err)
	}

	out := strings.TrimSuffix(source, consts.SourceExt) + ".s"
	if err = os.WriteFile(out, buf.Bytes(), 0644); err != nil {
		term.Error("[asm] write file failed: %v", err)
	}
	term.Suc("[asm] %s", out)
}

// reportSyntax prints a caret diagnostic and exits. Parse errors keep
// their kind and token index for debug logging.
func reportSyntax(err error) {
	var pe *parser.Error
	if errors.As(err, &pe) {
		logger.E("[parse] kind=%s token=%d", pe.Kind, pe.Index)
	}
	term.Red("%s", err.Error())
	os.Exit(1)
}

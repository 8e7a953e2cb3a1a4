package main

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/mcc-lang/mcc/astchunk"
	"github.com/mcc-lang/mcc/compiler"
	. "github.com/mcc-lang/mcc/json"
	"github.com/mcc-lang/mcc/term"
	"github.com/mcc-lang/mcc/utils"
)

// writeAst parses path and writes the tree as indented json next to
// it.
func writeAst(path string) {
	if !utils.Exist(path) {
		term.Error("[ast] file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		term.Error("[ast] can't read file: %v", err)
	}

	fn, err := compiler.Compile(string(data), path)
	if err != nil {
		reportSyntax(err)
	}

	j, err := Json.MarshalIndent(fn, "", "  ")
	if err != nil {
		term.Error("[ast] marshal failed: %v", err)
	}

	out := path + ".ast.json"
	if err = os.WriteFile(out, j, 0644); err != nil {
		term.Error("[ast] write file failed: %v", err)
	}
	term.Suc("[ast] %s", out)
}

// inspect prints a dumped tree, or the part query selects. It reads
// both .mca chunks and .ast.json dumps.
func inspect(path, query string) {
	data, err := os.ReadFile(path)
	if err != nil {
		term.Error("[inspect] can't read file: %v", err)
	}

	if ok, payload := astchunk.IsChunk(data); ok {
		data = payload
	}

	// query results go to stdout so they can be piped
	if query == "" {
		fmt.Println(string(data))
		return
	}

	res := gjson.GetBytes(data, query)
	if !res.Exists() {
		term.Warn("[inspect] no match for %q", query)
		return
	}
	fmt.Println(res.String())
}

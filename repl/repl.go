package repl

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"slices"

	"atomicgo.dev/keyboard/keys"
	glc "github.com/lollipopkit/go-lru-cacher"

	"github.com/mcc-lang/mcc/compiler/ast"
	"github.com/mcc-lang/mcc/compiler/parser"
	"github.com/mcc-lang/mcc/consts"
	"github.com/mcc-lang/mcc/interp"
	. "github.com/mcc-lang/mcc/json"
	"github.com/mcc-lang/mcc/term"
	"github.com/mcc-lang/mcc/utils"
)

var (
	linesHistory = []string{}
	helpMsgs     = []string{
		"`Esc`: Exit REPL",
		"`Tab`: Add 2 spaces",
		"`Ctrl + a`: Clear REPL history",
		"",
		"`:help`: Print this help",
		"`:vars`: List defined variables",
		"`:reset`: Reset REPL state",
		"`:quit`: Exit REPL",
	}
	historyPath = filepath.Join(consts.MccPath, "mcc_history.json")
	parseCache  = glc.NewCacher[*ast.Function](32)
	ip          = interp.New()
	blockLines  = []string{}
)

// Repl evaluates lines against a persistent interpreter and prints
// results. wg gates the banner on the upgrade check.
func Repl(wg *sync.WaitGroup) {
	loadHistory()
	wg.Wait()

	fmt.Printf(
		"mcc (v%s) - %s for help\n",
		term.CYAN+consts.VERSION+term.NOCOLOR,
		term.GREEN+"`:help`"+term.NOCOLOR,
	)

	for {
		line := term.ReadLine(term.ReadLineConfig{
			History: linesHistory,
			KeyFunc: handleKeyboard,
		})
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ":") && len(blockLines) == 0 {
			runCommand(line)
			continue
		}

		blockLines = append(blockLines, line)
		blockStr := strings.Join(blockLines, "\n")
		if _blockNotEndCount(blockStr) > 0 {
			continue
		}

		eval(blockStr)

		blockLines = []string{}
	}
}

func runCommand(cmd string) {
	updateHistory(cmd)
	switch cmd {
	case ":help":
		print(strings.Join(helpMsgs, "\n") + "\n")
	case ":vars":
		vars := ip.Vars()
		if len(vars) == 0 {
			term.Info("[REPL] no variables yet")
			return
		}
		term.Blue("%s", strings.Join(vars, "\n"))
	case ":reset":
		ip = interp.New()
		blockLines = []string{}
	case ":quit":
		os.Exit(0)
	default:
		term.Warn("[REPL] unknown command %q, `:help` lists them", cmd)
	}
}

// eval runs code as a bare expression when it parses as one, so
// `a + 1` prints its value without a return. Anything else runs as
// statements and prints only what they return.
func eval(code string) {
	defer updateHistory(code)

	if exp, err := parser.ParseExp(code, "stdin"); err == nil {
		val, err := ip.Eval(exp)
		if err != nil {
			term.Err("%v", err)
			return
		}
		term.Green("%d", val)
		return
	}

	fn, err := parseBlock(code)
	if err != nil {
		term.Red("%s", err.Error())
		return
	}

	val, returned, err := ip.Exec(fn)
	if err != nil {
		term.Err("%v", err)
		return
	}
	if returned {
		term.Green("%d", val)
	}
}

// parseBlock caches parsed blocks, so re-running history entries
// skips the parser.
func parseBlock(block string) (*ast.Function, error) {
	if cached, ok := parseCache.Get(block); ok {
		return *cached, nil
	}
	fn, err := parser.ParseStmts(block, "stdin")
	if err != nil {
		return nil, err
	}
	parseCache.Set(block, &fn)
	return fn, nil
}

func handleKeyboard(key keys.Key, rs *[]rune, rIdx *int, lIdx *int) (bool, bool, error) {
	switch key.Code {
	case keys.Esc:
		os.Exit(0)
	case keys.CtrlA:
		linesHistory = []string{}
		writeHistory()
	}
	return false, false, nil
}

func _updateHistory(str string) {
	idx := -1
	for i := range linesHistory {
		if linesHistory[i] == str {
			idx = i
			break
		}
	}
	if idx != -1 {
		linesHistory = slices.Delete(linesHistory, idx, idx+1)
	}
	linesHistory = append(linesHistory, str)
}

func updateHistory(str string) {
	str = strings.Trim(str, "\n")
	strs := strings.Split(str, "\n")
	for idx := range strs {
		_updateHistory(strs[idx])
	}
	writeHistory()
}

// _blockNotEndCount reports how many braces and parens are still
// open. Line comments are skipped so a commented `{` can't hold the
// repl waiting.
func _blockNotEndCount(block string) int {
	count := 0
	for _, line := range strings.Split(block, "\n") {
		if idx := strings.Index(line, "//"); idx != -1 {
			line = line[:idx]
		}
		for _, c := range line {
			switch c {
			case '{', '(':
				count++
			case '}', ')':
				count--
			}
		}
	}
	return count
}

func writeHistory() {
	data, err := Json.MarshalIndent(linesHistory, "", "  ")
	if err != nil {
		term.Warn("[REPL] marshal history failed: %v", err)
	}
	if err := os.MkdirAll(consts.MccPath, 0755); err != nil {
		term.Warn("[REPL] mkdir failed: %v", err)
		return
	}
	if err := os.WriteFile(historyPath, data, 0644); err != nil {
		term.Warn("[REPL] write history failed: %v", err)
	}
}

func loadHistory() {
	if utils.Exist(historyPath) {
		data, err := os.ReadFile(historyPath)
		if err != nil {
			term.Warn("[REPL] read history failed: %v", err)
		}
		err = Json.Unmarshal(data, &linesHistory)
		if err != nil {
			term.Warn("[REPL] unmarshal history failed: %v", err)
		}
	} else {
		writeHistory()
	}
}

package term

import (
	"fmt"
	"os"
	"strings"
)

const (
	RED     = "\033[91m"
	GREEN   = "\033[32m"
	YELLOW  = "\033[93m"
	BLUE    = "\033[94m"
	CYAN    = "\033[96m"
	NOCOLOR = "\033[0m"
)

const (
	warn    = YELLOW + "[WAR]" + NOCOLOR + " "
	err     = RED + "[ERR]" + NOCOLOR + " "
	info    = CYAN + "[INF]" + NOCOLOR + " "
	success = GREEN + "[SUC]" + NOCOLOR + " "
)

func print(s string) {
	os.Stdout.WriteString(s + NOCOLOR)
}

func printf(format string, args ...any) {
	f := fmt.Sprintf(format+"\n", args...)
	print(f)
}

func Warn(format string, args ...any) {
	printf(warn+format, args...)
}

func Info(format string, args ...any) {
	printf(info+format, args...)
}

func Err(format string, args ...any) {
	printf(err+format, args...)
}

func Suc(format string, args ...any) {
	printf(success+format, args...)
}

func Red(format string, args ...any) {
	printf(RED+format+NOCOLOR, args...)
}

func Green(format string, args ...any) {
	printf(GREEN+format+NOCOLOR, args...)
}

func Blue(format string, args ...any) {
	printf(BLUE+format+NOCOLOR, args...)
}

func Cyan(format string, args ...any) {
	printf(CYAN+format+NOCOLOR, args...)
}

// Error prints a bordered message and exits.
func Error(format string, args ...any) {
	print(RED + addBorder(fmt.Sprintf(format, args...), "Error"))
	os.Exit(1)
}

func addBorder(s, title string) string {
	lines := strings.Split(s, "\n")
	longest := 4
	for idx := range lines {
		if len(lines[idx]) > longest {
			longest = len(lines[idx])
		}
	}

	w := longest + 6
	titleW := len(title)
	if w < titleW {
		w = titleW
	}
	result := "╔═ " + title + " " + strings.Repeat("═", w-titleW-3) + "╗\n"
	for idx := range lines {
		blankWidth := w - len(lines[idx])
		blank := strings.Repeat(" ", blankWidth/2)
		moreBlank := strings.Repeat(" ", blankWidth%2)
		result += "║" + blank + lines[idx] + blank + moreBlank + "║\n"
	}
	result += "╚" + strings.Repeat("═", w) + "╝\n"
	return result
}

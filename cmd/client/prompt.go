package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// promptLine reads one line from stdin after printing label. ok is false
// once stdin is exhausted.
func promptLine(scanner *bufio.Scanner, label string) (line string, ok bool) {
	fmt.Print(label)
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}

// promptPassword reads a password without echoing when stdin is a terminal,
// falling back to a plain line read otherwise (pipes, tests).
func promptPassword(scanner *bufio.Scanner, label string) (password string, ok bool) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Print(label)
		pw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", false
		}
		return string(pw), true
	}

	fmt.Print(label)
	if !scanner.Scan() {
		return "", false
	}
	return scanner.Text(), true
}

// promptNote collects the two note fields. Sanitization happens in the
// notes package, not here.
func promptNote(scanner *bufio.Scanner) (title, text string, ok bool) {
	if title, ok = promptLine(scanner, "Enter your title: "); !ok {
		return "", "", false
	}
	if text, ok = promptLine(scanner, "Enter your math equation: "); !ok {
		return "", "", false
	}
	return title, text, true
}

// confirm asks a yes/no question, defaulting to yes.
func confirm(scanner *bufio.Scanner, label string) bool {
	answer, ok := promptLine(scanner, label+" [Y/n]: ")
	if !ok {
		return true
	}
	return answer == "" || strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
}

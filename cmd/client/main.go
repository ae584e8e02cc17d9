// Package main is the interactive MathNotes client: it logs in against the
// authentication API (or resumes a stored session), then runs a shell over
// the user's note collection in the encrypted local store.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atinyakov/MathNotes/internal/client/eval"
	"github.com/atinyakov/MathNotes/internal/client/notes"
	"github.com/atinyakov/MathNotes/internal/client/session"
	"github.com/atinyakov/MathNotes/internal/client/storage"
	"github.com/atinyakov/MathNotes/internal/models"
)

const loginTimeout = 10 * time.Second

var (
	version   string
	buildDate string
)

// login prompts for credentials until the server accepts them or the user
// gives up. Bad credentials and transport failures both keep the loop
// going with a printed alert; only EOF ends it.
func login(sc *session.Client, scanner *bufio.Scanner) *models.Session {
	for {
		username, ok := promptLine(scanner, "Username: ")
		if !ok {
			return nil
		}
		password, ok := promptPassword(scanner, "Password: ")
		if !ok {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), loginTimeout)
		sess, err := sc.Login(ctx, username, password)
		cancel()
		switch {
		case err == nil:
			return sess
		case errors.Is(err, session.ErrAuthFailed):
			fmt.Println("Username or password is invalid.")
		default:
			log.Printf("login error: %v", err)
			fmt.Println("Could not reach the server. Please try again.")
		}
	}
}

// repl runs the interactive shell loop over the user's note collection.
// The collection is saved after every successful add and once more on exit.
func repl(store *storage.Store, sess *models.Session) {
	collection := notes.Load(store, sess.Username)
	fmt.Printf("Math Notes: %s (%d notes)\n", sess.Username, len(collection))

	defer func() {
		// Unmount: write the collection back.
		if err := notes.Save(store, sess.Username, collection); err != nil {
			log.Printf("error storing notes: %v", err)
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("mathnotes> ")
		if !scanner.Scan() {
			return
		}
		args := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, list, add, eval <n>, exit")
		case "list":
			if len(collection) == 0 {
				fmt.Println("No notes yet.")
				continue
			}
			for i, n := range collection {
				fmt.Printf("%d. %s: %s\n", i+1, n.Title, n.Text)
			}
		case "add":
			title, text, ok := promptNote(scanner)
			if !ok {
				return
			}
			next, err := notes.Add(collection, title, text)
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			collection = next
			if err := notes.Save(store, sess.Username, collection); err != nil {
				log.Printf("error storing notes: %v", err)
				fmt.Println("Warning: the note could not be saved to disk.")
			}
		case "eval":
			if len(args) < 2 {
				fmt.Println("Usage: eval <n>")
				continue
			}
			i, err := strconv.Atoi(args[1])
			if err != nil || i < 1 || i > len(collection) {
				fmt.Println("No such note.")
				continue
			}
			result, err := eval.Evaluate(collection[i-1].Text)
			if err != nil {
				fmt.Println("Invalid math equation.")
				continue
			}
			fmt.Printf("Result: %g\n", result)
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func main() {
	var (
		baseURL   string
		storePath string
		keyPath   string
		caFile    string
		showVer   bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.StringVar(&storePath, "store", "mathnotes.store", "path to the encrypted local store")
	flag.StringVar(&keyPath, "keyfile", "mathnotes.key", "path to the local store key")
	flag.StringVar(&caFile, "ca", "", "path to a CA certificate to trust for the server")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("MathNotes Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	key, err := storage.LoadOrCreateKey(keyPath)
	if err != nil {
		log.Fatal(err)
	}
	store, err := storage.Open(storePath, key)
	if err != nil {
		log.Fatal(err)
	}

	httpClient, err := session.NewHTTPClient(caFile, loginTimeout)
	if err != nil {
		log.Fatal(err)
	}
	sc := &session.Client{HTTP: httpClient, BaseURL: baseURL, Store: store}

	scanner := bufio.NewScanner(os.Stdin)

	// Offer to resume a previously stored, unexpired session before asking
	// for credentials.
	sess, err := sc.Restore()
	if err != nil {
		log.Printf("session restore: %v", err)
	}
	if sess != nil && !confirm(scanner, fmt.Sprintf("Resume session for %s?", sess.Username)) {
		_ = sc.Logout()
		sess = nil
	}
	if sess == nil {
		sess = login(sc, scanner)
		if sess == nil {
			return
		}
	}

	repl(store, sess)
}

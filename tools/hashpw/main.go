// Package main hashes a password for a credentials-file entry.
//
// Usage: hashpw -u bob -p "hunter2" prints a ready-to-paste JSON entry.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/atinyakov/MathNotes/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	var (
		username string
		password string
		cost     int
	)
	flag.StringVar(&username, "u", "", "username")
	flag.StringVar(&password, "p", "", "plaintext password to hash")
	flag.IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost")
	flag.Parse()

	if username == "" || password == "" {
		log.Fatal("both -u and -p are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	entry, err := json.MarshalIndent(models.Credential{
		Username:     username,
		PasswordHash: string(hash),
	}, "", "  ")
	if err != nil {
		log.Fatalf("encode entry: %v", err)
	}
	fmt.Println(string(entry))
}

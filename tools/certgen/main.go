// Package main generates a self-signed server certificate and key for the
// authentication API, writing them under the "certs" directory.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/atinyakov/MathNotes/internal/certgen"
)

func main() {
	var (
		dir   string
		hosts string
	)
	flag.StringVar(&dir, "dir", "certs", "output directory")
	flag.StringVar(&hosts, "hosts", "localhost,127.0.0.1", "comma-separated DNS names and IPs")
	flag.Parse()

	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	certPEM, keyPEM, err := certgen.GenerateServerCertificate(strings.Split(hosts, ","))
	if err != nil {
		log.Fatalf("generate certificate: %v", err)
	}

	certPath := filepath.Join(dir, "server.crt")
	keyPath := filepath.Join(dir, "server.key")
	if err := os.WriteFile(certPath, certPEM, 0644); err != nil {
		log.Fatalf("write %s: %v", certPath, err)
	}
	if err := os.WriteFile(keyPath, keyPEM, 0600); err != nil {
		log.Fatalf("write %s: %v", keyPath, err)
	}

	fmt.Printf("Server certificate written to %s and %s\n", certPath, keyPath)
}

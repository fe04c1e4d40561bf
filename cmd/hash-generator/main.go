// Command hash-generator prints bcrypt hashes for inserting users by hand,
// e.g. into a database that was migrated without the seed user.
//
//	hash-generator -cost 12 'password123'
//	echo 'password123' | hash-generator
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/taskmgr/task-api/internal/domain"
	"github.com/taskmgr/task-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	if err := run(os.Stdout, os.Stdin, *cost, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "hash-generator:", err)
		os.Exit(1)
	}
}

// run hashes each password in args, or each line of in when args is empty.
func run(out io.Writer, in io.Reader, cost int, args []string) error {
	hasher, err := auth.NewBcryptHasher(cost)
	if err != nil {
		return err
	}

	passwords := args
	if len(passwords) == 0 {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			if line := strings.TrimRight(scanner.Text(), "\r"); line != "" {
				passwords = append(passwords, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read passwords: %w", err)
		}
	}

	for _, password := range passwords {
		if err := domain.ValidatePassword(password); err != nil {
			return err
		}
		hash, err := hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		fmt.Fprintln(out, hash)
	}
	return nil
}

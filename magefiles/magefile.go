//go:build mage

package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/joho/godotenv"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "bin/cbl-dispatch"

// Build tidies deps, then compiles the web server to ./bin/cbl-dispatch.
func Build() error {
	mg.Deps(Tidy)
	fmt.Println(">> Building server binary...")
	return sh.Run("go", "build", "-o", binary, ".")
}

// Run builds then executes the binary.
func Run() error {
	mg.Deps(Build, Seed)
	fmt.Println(">> Starting server ...")
	return sh.RunV("./" + binary)
}

// Dev starts the server via go run.
func Dev() error {
	mg.Deps(Seed)
	fmt.Println(">> Dev mode: go run . ...")
	cmd := exec.Command("go", "run", ".")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), "LOG_LEVEL=debug")
	return cmd.Run()
}

// Seed creates the uploads and data directories and the sample orders file.
func Seed() error {
	fmt.Println(">> Seeding local data...")
	return sh.RunV("go", "run", "./cmd/setup-database")
}

// Tidy runs go mod tidy.
func Tidy() error {
	fmt.Println(">> go mod tidy...")
	return sh.Run("go", "mod", "tidy")
}

// Test runs all unit tests.
func Test() error {
	fmt.Println(">> Running tests...")
	return sh.RunV("go", "test", "-race", "./...")
}

// Lint runs golangci-lint if available.
func Lint() error {
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		fmt.Println(">> golangci-lint not found; skipping.")
		return nil
	}
	return sh.Run("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	fmt.Println(">> Cleaning...")
	return os.RemoveAll("bin")
}

func init() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("error loading .env file", "err", err)
	}
}

//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target to run when none is specified
var Default = Build

const binary = "lexikort"

// Build compiles the lexikort binary
func Build() error {
	fmt.Println("Building", binary)
	return sh.RunV("go", "build", "-o", binary, "./cmd/lexikort")
}

// Install installs lexikort into GOPATH/bin
func Install() error {
	return sh.RunV("go", "install", "./cmd/lexikort")
}

// Test runs the unit tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet over all packages
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs vet and the tests
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Clean removes the built binary
func Clean() error {
	fmt.Println("Cleaning...")
	return os.RemoveAll(binary)
}

//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "lingoanki"

// Default target to run when none is specified
var Default = Build

// Build compiles the lingoanki binary
func Build() error {
	fmt.Println("Building", binary)
	return sh.RunV("go", "build", "-o", binary, "./cmd/lingoanki")
}

// Install installs lingoanki into GOPATH/bin
func Install() error {
	return sh.RunV("go", "install", "./cmd/lingoanki")
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Race runs all tests with the race detector
func Race() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs vet and the tests
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Clean removes build artifacts
func Clean() error {
	fmt.Println("Cleaning")
	return os.RemoveAll(binary)
}

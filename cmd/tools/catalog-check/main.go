// cmd/tools/catalog-check/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"benefits-wizard/pkg/registry"
)

var catalogPath string

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)
	generateCmd := flag.NewFlagSet("generate", flag.ExitOnError)

	validateCmd.StringVar(&catalogPath, "path", "configs/steps.json", "Path to step catalog file")
	listCmd.StringVar(&catalogPath, "path", "configs/steps.json", "Path to step catalog file")
	generateOut := generateCmd.String("out", "configs/steps.json", "Where to write the generated catalog")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		if err := validateCatalog(); err != nil {
			fmt.Printf("Catalog validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Catalog validation passed.")

	case "list":
		listCmd.Parse(os.Args[2:])
		if err := listSteps(); err != nil {
			fmt.Printf("Error listing steps: %v\n", err)
			os.Exit(1)
		}

	case "generate":
		generateCmd.Parse(os.Args[2:])
		if err := generateCatalog(*generateOut); err != nil {
			fmt.Printf("Error generating catalog: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote catalog to %s\n", *generateOut)

	case "help":
		fallthrough
	default:
		help()
	}
}

func validateCatalog() error {
	cat, err := registry.LoadCatalog(catalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return err
	}
	fmt.Printf("Catalog validation passed. Found %d steps.\n", len(cat.Steps))
	return nil
}

func listSteps() error {
	cat, err := registry.LoadCatalog(catalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	for i, step := range cat.Steps {
		line := fmt.Sprintf("%d. %s (%s)", i+1, step.Title, step.ID)
		if step.SkipCondition != "" {
			line += fmt.Sprintf(" [skippable: %s]", step.SkipCondition)
		}
		if step.Prefillable {
			line += " [prefillable]"
		}
		fmt.Println(line)
	}
	return nil
}

// generateCatalog writes the built-in catalog out as a starting point for a
// hand-edited file.
func generateCatalog(path string) error {
	cat := registry.Default()
	cat.LastUpdated = time.Now().Format(time.RFC3339)

	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	return nil
}

func help() {
	fmt.Print(`
Usage: catalog-check <command> [flags]

Commands:
  validate Validate the step catalog against the wizard taxonomy
  list     Print the catalog steps in wizard order
  generate Write the built-in catalog to a file
  help     Show this help message

Examples:
  catalog-check validate -path configs/steps.json
  catalog-check list
  catalog-check generate -out configs/steps.json

Use 'catalog-check <command> -h' for more information about a command.
`)
}

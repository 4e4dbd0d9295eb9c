package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/umputun/pomodoro/pkg/config"
	"github.com/umputun/pomodoro/pkg/settings"
)

func main() {
	// output directory, current one by default
	outputDir := "."
	if len(os.Args) > 1 {
		outputDir = os.Args[1]
	}
	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	schemas := map[string]*jsonschema.Schema{
		"settings.schema.json": settings.Schema(),
		"config.schema.json":   config.GenerateSchema(),
	}

	for name, schema := range schemas {
		if err := writeSchema(filepath.Join(outputDir, name), schema); err != nil {
			log.Fatalf("failed to write %s: %v", name, err)
		}
		fmt.Printf("Schema generated successfully at %s\n", filepath.Join(outputDir, name))
	}
}

func writeSchema(path string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil { //nolint:gosec // schema file is not sensitive
		return fmt.Errorf("write schema: %w", err)
	}
	return nil
}

package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra/doc"

	"github.com/devcat-io/devcat/cmd"
)

func main() {
	log.Println("Generating docs...")
	outputDir := filepath.Join("docs")
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Fatal("Error creating docs dir: " + err.Error())
	}

	if err := doc.GenMarkdownTree(cmd.RootCmd, outputDir); err != nil {
		log.Fatal("Error generating documentation: " + err.Error())
	}
	log.Println("Documentation generated in " + outputDir)
}

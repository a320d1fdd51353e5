package main

import (
	"flag"
	"log"
	"os"

	"github.com/i474232898/weather-dashboard/internal/qr"
)

func main() {
	var (
		url    = flag.String("url", "", "URL to encode; prompts when empty")
		def    = flag.String("default", "", "answer used when the prompt is left empty")
		outDir = flag.String("out", ".", "directory for qr.png and url.txt")
		size   = flag.Int("size", qr.DefaultSize, "image size in pixels")
	)
	flag.Parse()

	target := *url
	if target == "" {
		answer, err := qr.Prompt(os.Stdin, os.Stdout, *def)
		if err != nil {
			log.Fatalf("failed to read url: %v", err)
		}
		target = answer
	}

	art, err := qr.Generate(target, *outDir, *size)
	if err != nil {
		log.Fatalf("failed to generate qr code: %v", err)
	}
	log.Printf("INFO: wrote %s and %s", art.ImagePath, art.TextPath)
}

// Command dmd downloads block data from PrismarineJS minecraft-data for use
// as the server's palette_file.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	get "github.com/hashicorp/go-getter"
)

func main() {
	var (
		base     = flag.String("base", "https://raw.githubusercontent.com/PrismarineJS/minecraft-data/master", "base url")
		platform = flag.String("platform", "pc", "platform of the data")
		ver      = flag.String("version", "1.13.2", "game version")
		file     = flag.String("file", "blocks.json", "data file to fetch")
		out      = flag.String("o", "./data", "output dir path")
	)
	flag.Parse()

	if *out == "" || *platform == "" || *ver == "" || *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	dst := filepath.Join(*out, fmt.Sprintf("%s-%s", *platform, *ver), *file)
	url := dataURL(*base, *platform, *ver, *file)

	log.Printf("downloading %s to %s", url, dst)

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}
	if err := get.GetFile(dst, url); err != nil {
		log.Fatalf("download %s: %v", url, err)
	}

	log.Printf("done, set palette_file: %s", dst)
}

// dataURL returns the location of a data file, e.g.
// https://raw.githubusercontent.com/PrismarineJS/minecraft-data/master/data/pc/1.13.2/blocks.json
func dataURL(base, platform, version, file string) string {
	return fmt.Sprintf("%s/data/%s/%s/%s", base, platform, version, file)
}

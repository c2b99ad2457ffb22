// camera-info prints the configured camera's specs and the supported
// camera types without opening any device.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/teslashibe/go-camera/internal/config"
	"github.com/teslashibe/go-camera/internal/log"
	"github.com/teslashibe/go-camera/pkg/camera"
)

func main() {
	path := flag.String("config", "camera.yaml", "Settings file (YAML)")
	asJSON := flag.Bool("json", false, "Print the capture settings as JSON as well")
	flag.Parse()

	log.Init("warn")

	store, info, err := config.LoadCamera(*path)
	if err != nil {
		log.Error("load settings failed", "path", *path, "error", err)
		os.Exit(1)
	}

	fmt.Println(info.Describe())
	fmt.Printf("Supported types: %s\n", strings.Join(camera.DefaultRegistry().Names(), ", "))

	if *asJSON {
		t, err := info.Resolve(camera.DefaultRegistry())
		if err != nil {
			log.Error("unknown camera type", "type", info.Type, "error", err)
			os.Exit(1)
		}
		capture, err := store.CaptureConfig(t)
		if err != nil {
			log.Error("invalid capture settings", "error", err)
			os.Exit(1)
		}
		data, err := json.MarshalIndent(capture, "", "  ")
		if err != nil {
			log.Error("encode capture settings failed", "error", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	}
}

package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/df07/go-mirror-raytracer/pkg/scene"
	"github.com/df07/go-mirror-raytracer/web/server"
)

func main() {
	// Optional .env with RAYTRACER_SCENES_DIR
	_ = godotenv.Load()

	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes", scene.ScenesDir(), "Directory of JSON scene files")
	flag.Parse()

	webServer := server.NewServer(*port, *scenesDir)

	log.Printf("Mirror Raytracer Web Server")
	log.Printf("Visit http://localhost:%d to start rendering", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}

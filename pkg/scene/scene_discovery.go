package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-mirror-raytracer/pkg/core"
)

// ErrUnknownScene is returned when a scene name matches neither a built-in nor a file
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Name passed to Create
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the JSON file (file type only)
}

type builtinScene struct {
	info  SceneInfo
	build func() *Scene
}

var builtinScenes = []builtinScene{
	{SceneInfo{ID: "default", DisplayName: "Checkerboard", Description: "Mirrored spheres on a checker floor with an orbiting sphere"}, NewDefaultScene},
	{SceneInfo{ID: "orbit", DisplayName: "Orbit", Description: "The checkerboard scene from a circling camera"}, NewOrbitScene},
	{SceneInfo{ID: "mirror-hall", DisplayName: "Mirror Hall", Description: "Facing mirror walls around a bouncing ball"}, NewMirrorHallScene},
	{SceneInfo{ID: "single-sphere", DisplayName: "Single Sphere", Description: "One matte sphere ahead of the camera"}, NewSingleSphereScene},
	{SceneInfo{ID: "empty", DisplayName: "Empty", Description: "Nothing but sky"}, NewEmptyScene},
}

// ScenesDir returns the directory searched for JSON scene files.
// RAYTRACER_SCENES_DIR overrides the default "scenes" (or "../scenes" from web/).
func ScenesDir() string {
	if dir := os.Getenv("RAYTRACER_SCENES_DIR"); dir != "" {
		return dir
	}
	for _, path := range []string{"scenes", "../scenes"} {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// ListScenes returns the built-in scenes followed by the JSON scenes in dir.
// Files that fail to load are reported to logger and skipped.
func ListScenes(dir string, logger core.Logger) ([]SceneInfo, error) {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		info := b.info
		info.Type = "builtin"
		scenes = append(scenes, info)
	}

	files, err := ListFileScenes(dir, logger)
	if err != nil {
		return nil, err
	}
	return append(scenes, files...), nil
}

// ListFileScenes scans dir for *.json scene files, sorted by display name
func ListFileScenes(dir string, logger core.Logger) ([]SceneInfo, error) {
	if dir == "" {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, path := range files {
		s, err := LoadFile(path)
		if err != nil {
			if logger != nil {
				logger.Printf("Warning: skipping scene %s: %v\n", path, err)
			}
			continue
		}
		id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		description := s.Description
		if description == "" {
			description = fmt.Sprintf("%d primitives, %dx%d", s.GetPrimitiveCount(), s.Width, s.Height)
		}
		scenes = append(scenes, SceneInfo{
			ID:          id,
			DisplayName: s.Name,
			Description: description,
			Type:        "file",
			FilePath:    path,
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// Create builds a scene by built-in name, by file name in dir, or by a path to a .json file
func Create(name, dir string) (*Scene, error) {
	if strings.HasSuffix(name, ".json") {
		if _, err := os.Stat(name); err == nil {
			return LoadFile(name)
		}
	}
	return CreateNamed(name, dir)
}

// CreateNamed builds a scene by built-in name or by the name of a JSON file directly
// inside dir. Paths are rejected, so untrusted names cannot reach other files.
func CreateNamed(name, dir string) (*Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnknownScene)
	}

	for _, b := range builtinScenes {
		if b.info.ID == name {
			return b.build(), nil
		}
	}

	if !isPlainName(name) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScene, name)
	}

	if dir != "" {
		path := filepath.Join(dir, name+".json")
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownScene, name)
}

// isPlainName reports whether name is a bare file stem with no path components
func isPlainName(name string) bool {
	return !strings.ContainsAny(name, `/\`) &&
		!strings.Contains(name, "..") &&
		filepath.Base(name) == name &&
		!filepath.IsAbs(name) &&
		filepath.VolumeName(name) == ""
}

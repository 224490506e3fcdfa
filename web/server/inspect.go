package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/geometry"
	"github.com/df07/go-mirror-raytracer/pkg/renderer"
	"github.com/df07/go-mirror-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit            bool                   `json:"hit"`
	GeometryType   string                 `json:"geometryType"`
	PrimitiveIndex int                    `json:"primitiveIndex"`
	Point          [3]float64             `json:"point"`
	Distance       float64                `json:"distance"`
	SurfaceColor   string                 `json:"surfaceColor"` // Color of the surface before reflections
	PixelColor     string                 `json:"pixelColor"`   // Final traced color
	Reflectivity   float64                `json:"reflectivity"`
	Properties     map[string]interface{} `json:"properties"`
}

// extractPrimitiveInfo describes a primitive with type assertions
func extractPrimitiveInfo(primitive geometry.Primitive, t float64) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch p := primitive.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(p.Center)
		properties["radius"] = p.Radius
		return "sphere", properties

	case *geometry.MovingSphere:
		properties["center"] = vecArray(p.CenterAt(t))
		properties["radius"] = p.Radius
		properties["trajectory"] = p.Path.Kind.String()
		return "movingSphere", properties

	case *geometry.Plane:
		properties["point"] = vecArray(p.Point)
		properties["normal"] = vecArray(p.Normal)
		if p.Checker {
			properties["checker"] = true
			properties["altColor"] = p.AltColor.String()
			properties["checkerSize"] = p.CheckerSize
		}
		return "plane", properties

	default:
		return "unknown", properties
	}
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// inspectPixel casts the primary ray through pixel (x, y) at time t and describes what it hits
func inspectPixel(sc *scene.Scene, width, height, x, y int, t float64) (InspectResponse, error) {
	camera := sc.Camera
	pose, err := camera.Pose(t)
	if err != nil {
		return InspectResponse{}, err
	}
	frustum, err := geometry.NewFrustum(pose, camera.Up, camera.NearPlane, camera.FOV, width, height)
	if err != nil {
		return InspectResponse{}, err
	}

	ray := frustum.RayFor(x, y)
	response := InspectResponse{PrimitiveIndex: -1, PixelColor: sc.Sky.String()}

	hit, index, isHit := sc.ClosestPrimitive(ray, t)
	if !isHit {
		return response, nil
	}

	geometryType, properties := extractPrimitiveInfo(sc.Primitives[index], t)
	pixelColor, _ := renderer.Trace(ray, sc, sc.MaxDepth, t)

	response.Hit = true
	response.GeometryType = geometryType
	response.PrimitiveIndex = index
	response.Point = vecArray(hit.Point)
	response.Distance = hit.Distance
	response.SurfaceColor = hit.Color.String()
	response.PixelColor = pixelColor.String()
	response.Reflectivity = hit.Reflectivity
	response.Properties = properties
	return response, nil
}

// handleInspect reports what the primary ray through a pixel hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseFrameRequest(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	sc, err := scene.CreateNamed(req.Scene, s.scenesDir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	width, height := req.Width, req.Height
	if width == 0 {
		width, height = sc.Width, sc.Height
	}
	if req.Depth > 0 {
		sc.MaxDepth = req.Depth
	}

	x, err := parseIntParam(r.URL.Query(), "x", -1, 0, width-1)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	y, err := parseIntParam(r.URL.Query(), "y", -1, 0, height-1)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if x < 0 || y < 0 {
		http.Error(w, "x and y are required", http.StatusBadRequest)
		return
	}

	response, err := inspectPixel(sc, width, height, x, y, req.Time)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

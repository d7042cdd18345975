package server

import (
	"math"
	"net/http"

	"github.com/df07/go-diffuse-raytracer/pkg/geometry"
	"github.com/df07/go-diffuse-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit         bool       `json:"hit"`
	SphereIndex int        `json:"sphereIndex"` // Position in the scene's sphere list, -1 on a miss
	Center      [3]float64 `json:"center"`
	Radius      float64    `json:"radius"`
	Point       [3]float64 `json:"point"`
	Normal      [3]float64 `json:"normal"`
	Distance    float64    `json:"distance"`
	FrontFace   bool       `json:"frontFace"`
}

// inspectPixel traces the ray through the center of pixel (x, y), row 0 at
// the top, and reports the nearest sphere it hits
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResponse {
	width, height := sceneObj.SamplingConfig.Width, sceneObj.SamplingConfig.Height
	u := (float64(pixelX) + 0.5) / float64(max(width-1, 1))
	v := (float64(height-1-pixelY) + 0.5) / float64(max(height-1, 1))
	ray := sceneObj.Camera.GetRay(u, v)

	bias := sceneObj.IntegratorConfig.Bias
	hit, isHit := sceneObj.World.Hit(ray, bias, math.Inf(1))
	if !isHit {
		return InspectResponse{SphereIndex: -1}
	}

	response := InspectResponse{
		Hit:         true,
		SphereIndex: -1,
		Point:       [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z},
		Normal:      [3]float64{hit.Normal.X, hit.Normal.Y, hit.Normal.Z},
		Distance:    hit.T,
		FrontFace:   hit.FrontFace,
	}

	// The list keeps the first of equally near hits, so the first member
	// reporting this distance is the one that was hit
	for i, shape := range sceneObj.World.Shapes() {
		sphere, ok := shape.(*geometry.Sphere)
		if !ok {
			continue
		}
		if shapeHit, ok := sphere.Hit(ray, bias, math.Inf(1)); ok && shapeHit.T == hit.T {
			response.SphereIndex = i
			response.Center = [3]float64{sphere.Center.X, sphere.Center.Y, sphere.Center.Z}
			response.Radius = sphere.Radius
			break
		}
	}

	return response
}

// handleInspect reports what is visible at a pixel of a scene
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sceneName := query.Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := s.createScene(sceneName)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	width, err := parseIntParam(query, "width", sceneObj.SamplingConfig.Width, widthLimit.min, widthLimit.max)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	sceneObj.SetWidth(width)

	x, err := parseIntParam(query, "x", 0, 0, sceneObj.SamplingConfig.Width-1)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	y, err := parseIntParam(query, "y", 0, 0, sceneObj.SamplingConfig.Height-1)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, x, y))
}

package server

import (
	"fmt"
	"net/http"

	"github.com/chewxy/math32"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	SphereIndex  int                    `json:"sphereIndex"`
	Center       [3]float32             `json:"center"`
	Radius       float32                `json:"radius"`
	Point        [3]float32             `json:"point"`
	Normal       [3]float32             `json:"normal"`
	Distance     float32                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// pixelCenter jitters every pixel sample to the exact center
type pixelCenter struct{}

func (pixelCenter) Get1D() float32   { return 0.5 }
func (pixelCenter) Get2D() core.Vec2 { return core.NewVec2(0.5, 0.5) }
func (pixelCenter) Get3D() core.Vec3 { return core.NewVec3(0.5, 0.5, 0.5) }

// extractMaterialInfo extracts material properties for display
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch mat.Kind {
	case material.KindLambertian, material.KindMetal:
		properties["albedo"] = toArray(mat.Albedo)
		properties["color"] = fmt.Sprintf("#%02x%02x%02x",
			int(mat.Albedo.X*255), int(mat.Albedo.Y*255), int(mat.Albedo.Z*255))
		if mat.Kind == material.KindMetal {
			properties["fuzz"] = mat.Fuzz
		}
	case material.KindDielectric:
		properties["refractionIndex"] = mat.RefractionIndex
		properties["color"] = "#ffffff" // Clear glass
	}
	return mat.Kind.String(), properties
}

// inspectPixel casts a ray through the center of pixel (x, y) and reports the first sphere hit.
// Defocus blur is ignored so the answer is deterministic.
func inspectPixel(sceneObj *scene.Scene, x, y int) (InspectResponse, error) {
	config := sceneObj.CameraConfig
	config.DefocusAngle = 0
	camera := renderer.NewCamera(config)
	if err := camera.Initialize(); err != nil {
		return InspectResponse{}, err
	}
	if x < 0 || x >= config.ImageWidth || y < 0 || y >= camera.ImageHeight() {
		return InspectResponse{}, fmt.Errorf("pixel (%d, %d) is outside the %dx%d image", x, y, config.ImageWidth, camera.ImageHeight())
	}

	ray := camera.GetRay(x, y, pixelCenter{})
	hit, isHit := sceneObj.World.Hit(ray, core.NewInterval(0.001, math32.Inf(1)))
	if !isHit {
		return InspectResponse{Hit: false, SphereIndex: -1}, nil
	}

	// Find which sphere produced the hit
	index := -1
	for i, sphere := range sceneObj.World.Spheres {
		if sphereHit, ok := sphere.Hit(ray, core.NewInterval(0.001, hit.T+0.001)); ok && sphereHit.T == hit.T {
			index = i
			break
		}
	}

	materialType, properties := extractMaterialInfo(hit.Material)
	resp := InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		SphereIndex:  index,
		Point:        toArray(hit.Point),
		Normal:       toArray(hit.Normal),
		Distance:     hit.T * ray.Direction.Length(),
		FrontFace:    hit.FrontFace,
		Properties:   properties,
	}
	if index >= 0 {
		sphere := sceneObj.World.Spheres[index]
		resp.Center = toArray(sphere.Center)
		resp.Radius = sphere.Radius
	}
	return resp, nil
}

// handleInspect reports the object under a pixel
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	sceneObj, _, err := parseSceneRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request: %w", err))
		return
	}

	x, err := parseIntParam(r.URL.Query(), "x", -1, 0, maxWidth)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	y, err := parseIntParam(r.URL.Query(), "y", -1, 0, maxWidth)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if x < 0 || y < 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("x and y are required"))
		return
	}

	resp, err := inspectPixel(sceneObj, x, y)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func toArray(v core.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

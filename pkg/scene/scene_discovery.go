package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the JSON file (file type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

const builtInGroup = "Built-in Scenes"

// ListFileScenes scans dir for *.json scene files
func ListFileScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		// No scenes directory, nothing to list
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("scene: scan %s: %w", dir, err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		info, err := ReadSceneInfo(filePath)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// ReadSceneInfo extracts the metadata fields of a scene file
func ReadSceneInfo(filePath string) (SceneInfo, error) {
	nameWithoutExt := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))

	info := SceneInfo{
		ID:       "file:" + nameWithoutExt,
		Name:     titleCase(nameWithoutExt),
		Group:    "Scene Files",
		Type:     "file",
		FilePath: filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, fmt.Errorf("scene: read %s: %w", filePath, err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return info, fmt.Errorf("scene: parse %s: %w", filePath, err)
	}

	if f.Name != "" {
		info.Name = f.Name
	}
	if f.Group != "" {
		info.Group = f.Group
	}
	info.Description = f.Description

	return info, nil
}

// ListAllScenes returns the built-in scene and the scene files in dir,
// grouped by category
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	builtInScenes := []SceneInfo{
		{
			ID:          "default",
			Name:        "Default Scene",
			Description: "A diffuse sphere resting on a large ground sphere",
			Group:       builtInGroup,
			Type:        "builtin",
		},
	}

	fileScenes, err := ListFileScenes(dir)
	if err != nil {
		return response, err
	}

	groupMap := make(map[string][]SceneInfo)
	for _, info := range append(builtInScenes, fileScenes...) {
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtInGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	response.Groups = append(response.Groups, SceneGroup{Name: builtInGroup, Scenes: groupMap[builtInGroup]})
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}

	return response, nil
}

// Load resolves a scene selector: "default", a "file:<name>" ID found in dir,
// or a path to a JSON scene file
func Load(selector, dir string) (*Scene, error) {
	switch {
	case selector == "" || selector == "default":
		return NewDefaultScene(), nil
	case strings.HasPrefix(selector, "file:"):
		name := strings.TrimPrefix(selector, "file:")
		if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
			return nil, fmt.Errorf("scene: invalid scene id %q", selector)
		}
		return LoadFile(filepath.Join(dir, name+".json"))
	case strings.HasSuffix(strings.ToLower(selector), ".json"):
		return LoadFile(selector)
	default:
		return nil, fmt.Errorf("scene: unknown scene %q", selector)
	}
}

// titleCase converts a filename-style string to title case
// e.g., "three-spheres" -> "Three Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}

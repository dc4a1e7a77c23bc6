package scene

import "github.com/linuxmatters/jivebars/internal/palette"

// Shader node types used by emissive bar materials.
const (
	NodeLightPath = "ShaderNodeLightPath"
	NodeEmission  = "ShaderNodeEmission"
	NodeMixShader = "ShaderNodeMixShader"
	NodeOutput    = "ShaderNodeOutputMaterial"
)

// Node is one shader node of a material's node tree.
type Node struct {
	Type     string     `json:"type"`
	Location [2]float64 `json:"location"`
}

// Link connects output socket FromSocket of node From to input socket
// ToSocket of node To. Nodes are referenced by their index in Material.Nodes.
type Link struct {
	From       int `json:"from"`
	FromSocket int `json:"from_socket"`
	To         int `json:"to"`
	ToSocket   int `json:"to_socket"`
}

// Material is an emissive surface shader.
type Material struct {
	Name     string        `json:"name"`
	Color    palette.Color `json:"color"`
	Strength float64       `json:"emission_strength"`
	Nodes    []Node        `json:"nodes"`
	Links    []Link        `json:"links"`
}

// buildEmissionTree resets m's node tree to
// LightPath -> Mix.fac, Emission -> Mix.shader2, Mix -> Output.surface.
func (m *Material) buildEmissionTree() {
	m.Nodes = []Node{
		{Type: NodeLightPath, Location: [2]float64{-200, 100}},
		{Type: NodeEmission, Location: [2]float64{0, -50}},
		{Type: NodeMixShader, Location: [2]float64{200, 0}},
		{Type: NodeOutput, Location: [2]float64{400, 0}},
	}
	m.Links = []Link{
		{From: 0, FromSocket: 0, To: 2, ToSocket: 0},
		{From: 1, FromSocket: 0, To: 2, ToSocket: 2},
		{From: 2, FromSocket: 0, To: 3, ToSocket: 0},
	}
}

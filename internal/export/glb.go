// Package export writes generated meshes and the level atlas to files.
package export

import (
	"errors"
	"fmt"

	"voxmesh/internal/meshing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

const (
	attrTexCoord2 = "TEXCOORD_2"
	generator     = "voxmesh"
)

// ErrEmptyMesh is returned when there is nothing to export.
var ErrEmptyMesh = errors.New("export: mesh has no triangles")

// Document converts m into a single-node glTF document. The material channel
// UVs go to TEXCOORD_1 and TEXCOORD_2; tangents are written only when every
// vertex has one.
func Document(m *meshing.Mesh, name string) (*gltf.Document, error) {
	if m == nil || len(m.Triangles) == 0 {
		return nil, ErrEmptyMesh
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = generator

	attrs := gltf.Attribute{
		gltf.POSITION: modeler.WritePosition(doc, vec3s(m.Vertices)),
		gltf.NORMAL:   modeler.WriteNormal(doc, vec3s(m.Normals)),
	}
	if hasTangents(m) {
		attrs[gltf.TANGENT] = modeler.WriteTangent(doc, vec4s(m.Tangents))
	}
	if len(m.UV0) > 0 {
		attrs[gltf.TEXCOORD_0] = modeler.WriteTextureCoord(doc, vec2s(m.UV0))
	}
	if len(m.UV1) > 0 {
		attrs[gltf.TEXCOORD_1] = modeler.WriteTextureCoord(doc, vec2s(m.UV1))
	}
	if len(m.UV2) > 0 {
		attrs[attrTexCoord2] = modeler.WriteTextureCoord(doc, vec2s(m.UV2))
	}
	translucent := false
	if len(m.Colors) > 0 {
		cs := vec4s(m.Colors)
		for _, c := range cs {
			if c[3] < 1 {
				translucent = true
				break
			}
		}
		attrs[gltf.COLOR_0] = modeler.WriteColor(doc, cs)
	}

	material := &gltf.Material{
		Name: name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float32{1, 1, 1, 1},
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(1),
		},
		AlphaMode: gltf.AlphaOpaque,
	}
	if translucent {
		material.AlphaMode = gltf.AlphaBlend
	}
	doc.Materials = []*gltf.Material{material}

	prim := &gltf.Primitive{
		Attributes: attrs,
		Indices:    gltf.Index(modeler.WriteIndices(doc, m.Triangles)),
		Material:   gltf.Index(0),
	}
	doc.Meshes = []*gltf.Mesh{{Name: name, Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{{Name: name, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return doc, nil
}

// WriteGLB writes m as a binary glTF file.
func WriteGLB(m *meshing.Mesh, path string) error {
	doc, err := Document(m, "VoxelMesh")
	if err != nil {
		return err
	}
	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("export: writing %s: %w", path, err)
	}
	return nil
}

func hasTangents(m *meshing.Mesh) bool {
	if len(m.Tangents) != len(m.Vertices) {
		return false
	}
	for _, t := range m.Tangents {
		if t == meshing.NoTangent {
			return false
		}
	}
	return true
}

func vec2s(in []mgl32.Vec2) [][2]float32 {
	out := make([][2]float32, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

func vec3s(in []mgl32.Vec3) [][3]float32 {
	out := make([][3]float32, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

func vec4s(in []mgl32.Vec4) [][4]float32 {
	out := make([][4]float32, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

package assets

import (
	"context"
	"fmt"

	"github.com/qmuntal/gltf"
)

// GLTFLoader reads bone names and clip metadata from glTF/GLB files.
// Mesh and texture data are left to the renderer.
type GLTFLoader struct{}

// Load opens path and extracts its first skin's joints and all animations.
// A document without skins falls back to every named node.
func (GLTFLoader) Load(ctx context.Context, path string) (*Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening gltf: %w", err)
	}
	return modelFromDocument(path, doc), nil
}

func modelFromDocument(path string, doc *gltf.Document) *Model {
	m := &Model{Path: path}

	if len(doc.Skins) > 0 {
		for _, j := range doc.Skins[0].Joints {
			idx := int(j)
			if idx < 0 || idx >= len(doc.Nodes) {
				continue
			}
			m.Bones = append(m.Bones, doc.Nodes[idx].Name)
		}
	} else {
		for _, n := range doc.Nodes {
			if n.Name != "" {
				m.Bones = append(m.Bones, n.Name)
			}
		}
	}

	for i, a := range doc.Animations {
		name := a.Name
		if name == "" {
			name = fmt.Sprintf("clip%d", i)
		}
		m.Clips = append(m.Clips, Clip{Name: name, Duration: animationDuration(doc, a)})
	}
	return m
}

// animationDuration is the largest keyframe time across the animation's samplers.
func animationDuration(doc *gltf.Document, a *gltf.Animation) float64 {
	var d float64
	for _, s := range a.Samplers {
		idx := int(s.Input)
		if idx < 0 || idx >= len(doc.Accessors) {
			continue
		}
		if mx := doc.Accessors[idx].Max; len(mx) > 0 && mx[0] > d {
			d = mx[0]
		}
	}
	return d
}

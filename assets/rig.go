// Package assets provides skeleton rigs, asset metadata loading and the
// one-shot future that gates zombie spawning.
package assets

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/hollow/components"
)

// Skeleton is the capability a loaded rig exposes: bone lookup by name.
type Skeleton interface {
	BoneNames() []string
	Bone(name string) *components.Bone
}

// Clip is animation clip metadata.
type Clip struct {
	Name     string
	Duration float64 // Seconds
}

// Model is the metadata of a skeletal mesh: its bones in node order and its clips.
type Model struct {
	Path  string
	Bones []string
	Clips []Clip
}

// Rig is one instance of a skeleton. Bones are owned by the rig; agents hold
// non-owning handles into it.
type Rig struct {
	names []string
	bones map[string]*components.Bone
}

// NewRig creates a rig with one bone per name at rest pose.
// Duplicate names resolve to the first bone.
func NewRig(names []string) *Rig {
	r := &Rig{
		names: make([]string, 0, len(names)),
		bones: make(map[string]*components.Bone, len(names)),
	}
	for _, n := range names {
		if _, ok := r.bones[n]; ok {
			continue
		}
		r.names = append(r.names, n)
		r.bones[n] = &components.Bone{Name: n, Heading: mgl64.QuatIdent()}
	}
	return r
}

// Instantiate creates a fresh rig for a model.
func Instantiate(m *Model) *Rig {
	return NewRig(m.Bones)
}

// BoneNames returns bone names in skeleton order.
func (r *Rig) BoneNames() []string {
	return r.names
}

// Bone returns the named bone, or nil.
func (r *Rig) Bone(name string) *components.Bone {
	return r.bones[name]
}

// ZombieLimbs resolves arm handles by bone name: a lower-cased name containing
// "arm" and a side ("right" or "left"). When several bones match, the last
// one in skeleton order wins, which picks forearms over upper arms in the
// usual Mixamo-style ordering.
func ZombieLimbs(sk Skeleton) components.Limbs {
	var limbs components.Limbs
	for _, name := range sk.BoneNames() {
		lower := strings.ToLower(name)
		if !strings.Contains(lower, "arm") {
			continue
		}
		switch {
		case strings.Contains(lower, "right"):
			limbs.RightArm = sk.Bone(name)
		case strings.Contains(lower, "left"):
			limbs.LeftArm = sk.Bone(name)
		}
	}
	return limbs
}

// Villager bone names.
const (
	BoneHead     = "head"
	BoneLeftArm  = "leftArm"
	BoneRightArm = "rightArm"
	BoneLeftLeg  = "leftLeg"
	BoneRightLeg = "rightLeg"
)

// VillagerRig creates the procedural villager skeleton.
func VillagerRig() *Rig {
	return NewRig([]string{BoneHead, BoneLeftArm, BoneRightArm, BoneLeftLeg, BoneRightLeg})
}

// VillagerLimbs resolves villager handles by exact name. Missing bones stay nil.
func VillagerLimbs(sk Skeleton) components.Limbs {
	return components.Limbs{
		Head:     sk.Bone(BoneHead),
		LeftArm:  sk.Bone(BoneLeftArm),
		RightArm: sk.Bone(BoneRightArm),
		LeftLeg:  sk.Bone(BoneLeftLeg),
		RightLeg: sk.Bone(BoneRightLeg),
	}
}

// SelectWalkClip picks the first clip whose name contains "walk"
// (case-insensitive), else the first clip. ok is false for zero clips.
func SelectWalkClip(clips []Clip) (Clip, bool) {
	if len(clips) == 0 {
		return Clip{}, false
	}
	for _, c := range clips {
		if strings.Contains(strings.ToLower(c.Name), "walk") {
			return c, true
		}
	}
	return clips[0], true
}

// ProceduralZombie is the built-in zombie model used when no asset path is set.
func ProceduralZombie() *Model {
	return &Model{
		Bones: []string{"Hips", "Spine", "LeftArm", "LeftForeArm", "RightArm", "RightForeArm", "Head"},
		Clips: []Clip{
			{Name: "Idle", Duration: 2},
			{Name: "Walk", Duration: 1.2},
		},
	}
}

// Package geometry generates common primitive meshes on the CPU, ready
// for upload through MeshCreate.
package geometry

import (
	"encoding/binary"

	"github.com/chewxy/math32"

	"github.com/ZiedYousfi/candidengine/engine/math"
	"github.com/ZiedYousfi/candidengine/engine/renderer/metadata"
)

// Cube returns an axis-aligned cube centered on the origin with the
// given edge length. Each face has its own four vertices so normals and
// UVs stay flat.
func Cube(size float32) metadata.MeshData {
	h := size * 0.5

	type face struct {
		normal  math.Vec3
		tangent math.Vec4
		corners [4]math.Vec3
	}
	faces := []face{
		{ // +X
			normal:  math.NewVec3(1, 0, 0),
			tangent: math.NewVec4(0, 0, -1, 1),
			corners: [4]math.Vec3{{X: h, Y: -h, Z: h}, {X: h, Y: -h, Z: -h}, {X: h, Y: h, Z: -h}, {X: h, Y: h, Z: h}},
		},
		{ // -X
			normal:  math.NewVec3(-1, 0, 0),
			tangent: math.NewVec4(0, 0, 1, 1),
			corners: [4]math.Vec3{{X: -h, Y: -h, Z: -h}, {X: -h, Y: -h, Z: h}, {X: -h, Y: h, Z: h}, {X: -h, Y: h, Z: -h}},
		},
		{ // +Y
			normal:  math.NewVec3(0, 1, 0),
			tangent: math.NewVec4(1, 0, 0, 1),
			corners: [4]math.Vec3{{X: -h, Y: h, Z: h}, {X: h, Y: h, Z: h}, {X: h, Y: h, Z: -h}, {X: -h, Y: h, Z: -h}},
		},
		{ // -Y
			normal:  math.NewVec3(0, -1, 0),
			tangent: math.NewVec4(1, 0, 0, 1),
			corners: [4]math.Vec3{{X: -h, Y: -h, Z: -h}, {X: h, Y: -h, Z: -h}, {X: h, Y: -h, Z: h}, {X: -h, Y: -h, Z: h}},
		},
		{ // +Z
			normal:  math.NewVec3(0, 0, 1),
			tangent: math.NewVec4(1, 0, 0, 1),
			corners: [4]math.Vec3{{X: -h, Y: -h, Z: h}, {X: h, Y: -h, Z: h}, {X: h, Y: h, Z: h}, {X: -h, Y: h, Z: h}},
		},
		{ // -Z
			normal:  math.NewVec3(0, 0, -1),
			tangent: math.NewVec4(-1, 0, 0, 1),
			corners: [4]math.Vec3{{X: h, Y: -h, Z: -h}, {X: -h, Y: -h, Z: -h}, {X: -h, Y: h, Z: -h}, {X: h, Y: h, Z: -h}},
		},
	}

	uvs := [4]math.Vec2{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0}}

	var d meshBuilder
	for _, f := range faces {
		base := uint32(len(d.vertices))
		for i, c := range f.corners {
			d.vertices = append(d.vertices, metadata.Vertex{
				Position:  c,
				Normal:    f.normal,
				Tangent:   f.tangent,
				Texcoord0: uvs[i],
				Color:     white,
			})
		}
		d.quad(base)
	}
	return d.finish()
}

// Sphere returns a UV sphere. segments is the slice count around the
// equator (minimum 3), rings the stack count pole to pole (minimum 2).
func Sphere(radius float32, segments, rings uint32) metadata.MeshData {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	var d meshBuilder
	for ring := uint32(0); ring <= rings; ring++ {
		phi := math.Pi * float32(ring) / float32(rings)
		y := math32.Cos(phi)
		r := math32.Sin(phi)
		for seg := uint32(0); seg <= segments; seg++ {
			theta := 2 * math.Pi * float32(seg) / float32(segments)
			n := math.NewVec3(r*math32.Cos(theta), y, r*math32.Sin(theta))
			d.vertices = append(d.vertices, metadata.Vertex{
				Position:  n.Scale(radius),
				Normal:    n,
				Tangent:   math.NewVec4(-math32.Sin(theta), 0, math32.Cos(theta), 1),
				Texcoord0: math.NewVec2(float32(seg)/float32(segments), float32(ring)/float32(rings)),
				Color:     white,
			})
		}
	}

	stride := segments + 1
	for ring := uint32(0); ring < rings; ring++ {
		for seg := uint32(0); seg < segments; seg++ {
			a := ring*stride + seg
			b := a + stride
			d.tri(a, b, a+1)
			d.tri(a+1, b, b+1)
		}
	}
	return d.finish()
}

// Plane returns a subdivided plane in the XZ plane facing +Y. subX and
// subZ are the cell counts along each axis (minimum 1).
func Plane(width, depth float32, subX, subZ uint32) metadata.MeshData {
	if subX < 1 {
		subX = 1
	}
	if subZ < 1 {
		subZ = 1
	}

	var d meshBuilder
	for z := uint32(0); z <= subZ; z++ {
		for x := uint32(0); x <= subX; x++ {
			u := float32(x) / float32(subX)
			v := float32(z) / float32(subZ)
			d.vertices = append(d.vertices, metadata.Vertex{
				Position:  math.NewVec3((u-0.5)*width, 0, (v-0.5)*depth),
				Normal:    math.NewVec3(0, 1, 0),
				Tangent:   math.NewVec4(1, 0, 0, 1),
				Texcoord0: math.NewVec2(u, v),
				Color:     white,
			})
		}
	}

	stride := subX + 1
	for z := uint32(0); z < subZ; z++ {
		for x := uint32(0); x < subX; x++ {
			a := z*stride + x
			b := a + stride
			d.tri(a, b, a+1)
			d.tri(a+1, b, b+1)
		}
	}
	return d.finish()
}

// Cylinder returns a capped cylinder along the Y axis, centered on the
// origin. segments is the slice count around the circumference
// (minimum 3).
func Cylinder(radius, height float32, segments uint32) metadata.MeshData {
	if segments < 3 {
		segments = 3
	}
	h := height * 0.5

	var d meshBuilder

	// Side.
	for seg := uint32(0); seg <= segments; seg++ {
		theta := 2 * math.Pi * float32(seg) / float32(segments)
		n := math.NewVec3(math32.Cos(theta), 0, math32.Sin(theta))
		tangent := math.NewVec4(-math32.Sin(theta), 0, math32.Cos(theta), 1)
		u := float32(seg) / float32(segments)
		d.vertices = append(d.vertices,
			metadata.Vertex{
				Position:  math.NewVec3(n.X*radius, -h, n.Z*radius),
				Normal:    n,
				Tangent:   tangent,
				Texcoord0: math.NewVec2(u, 1),
				Color:     white,
			},
			metadata.Vertex{
				Position:  math.NewVec3(n.X*radius, h, n.Z*radius),
				Normal:    n,
				Tangent:   tangent,
				Texcoord0: math.NewVec2(u, 0),
				Color:     white,
			},
		)
	}
	for seg := uint32(0); seg < segments; seg++ {
		a := seg * 2
		d.tri(a, a+2, a+1)
		d.tri(a+1, a+2, a+3)
	}

	// Caps: a center vertex plus a ring each.
	for _, top := range []bool{false, true} {
		y := -h
		normal := math.NewVec3(0, -1, 0)
		if top {
			y = h
			normal = math.NewVec3(0, 1, 0)
		}
		center := uint32(len(d.vertices))
		d.vertices = append(d.vertices, metadata.Vertex{
			Position:  math.NewVec3(0, y, 0),
			Normal:    normal,
			Tangent:   math.NewVec4(1, 0, 0, 1),
			Texcoord0: math.NewVec2(0.5, 0.5),
			Color:     white,
		})
		ring := uint32(len(d.vertices))
		for seg := uint32(0); seg <= segments; seg++ {
			theta := 2 * math.Pi * float32(seg) / float32(segments)
			c, s := math32.Cos(theta), math32.Sin(theta)
			d.vertices = append(d.vertices, metadata.Vertex{
				Position:  math.NewVec3(c*radius, y, s*radius),
				Normal:    normal,
				Tangent:   math.NewVec4(1, 0, 0, 1),
				Texcoord0: math.NewVec2(0.5+c*0.5, 0.5+s*0.5),
				Color:     white,
			})
		}
		for seg := uint32(0); seg < segments; seg++ {
			if top {
				d.tri(center, ring+seg, ring+seg+1)
			} else {
				d.tri(center, ring+seg+1, ring+seg)
			}
		}
	}
	return d.finish()
}

var white = metadata.Color{R: 1, G: 1, B: 1, A: 1}

type meshBuilder struct {
	vertices []metadata.Vertex
	indices  []uint32
}

func (d *meshBuilder) tri(a, b, c uint32) {
	d.indices = append(d.indices, a, b, c)
}

func (d *meshBuilder) quad(base uint32) {
	d.tri(base, base+1, base+2)
	d.tri(base, base+2, base+3)
}

func (d *meshBuilder) finish() metadata.MeshData {
	// 16-bit indices when they fit, which is every primitive at sane
	// tessellation levels.
	format := metadata.IndexFormatUint16
	if len(d.vertices) > 0xFFFF {
		format = metadata.IndexFormatUint32
	}
	raw := make([]byte, 0, len(d.indices)*int(format.Size()))
	for _, idx := range d.indices {
		if format == metadata.IndexFormatUint16 {
			raw = binary.LittleEndian.AppendUint16(raw, uint16(idx))
		} else {
			raw = binary.LittleEndian.AppendUint32(raw, idx)
		}
	}
	return metadata.MeshData{
		Vertices:    d.vertices,
		Indices:     raw,
		IndexFormat: format,
		Layout:      metadata.StandardVertexLayout(),
		Topology:    metadata.PrimitiveTriangleList,
	}
}

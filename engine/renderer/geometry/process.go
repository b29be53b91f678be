package geometry

import (
	"encoding/binary"

	"github.com/ZiedYousfi/candidengine/engine/math"
	"github.com/ZiedYousfi/candidengine/engine/renderer/metadata"
)

// CalculateNormals recomputes per-vertex normals from triangle faces,
// area-weighted. Existing normals are discarded.
func CalculateNormals(data *metadata.MeshData) {
	if data == nil || len(data.Vertices) == 0 {
		return
	}
	for i := range data.Vertices {
		data.Vertices[i].Normal = math.Vec3{}
	}
	forEachTriangle(data, func(i0, i1, i2 uint32) {
		v0 := data.Vertices[i0].Position
		v1 := data.Vertices[i1].Position
		v2 := data.Vertices[i2].Position
		// Cross product magnitude is twice the triangle area, so the
		// unnormalized sum weights by area for free.
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		data.Vertices[i0].Normal = data.Vertices[i0].Normal.Add(n)
		data.Vertices[i1].Normal = data.Vertices[i1].Normal.Add(n)
		data.Vertices[i2].Normal = data.Vertices[i2].Normal.Add(n)
	})
	for i := range data.Vertices {
		data.Vertices[i].Normal = data.Vertices[i].Normal.Normalized()
	}
}

// CalculateTangents recomputes per-vertex tangents from triangle UVs.
// Degenerate UV triangles contribute nothing; vertices that end up with
// no contribution keep a +X tangent.
func CalculateTangents(data *metadata.MeshData) {
	if data == nil || len(data.Vertices) == 0 {
		return
	}
	accum := make([]math.Vec3, len(data.Vertices))
	forEachTriangle(data, func(i0, i1, i2 uint32) {
		p0 := data.Vertices[i0].Position
		p1 := data.Vertices[i1].Position
		p2 := data.Vertices[i2].Position
		uv0 := data.Vertices[i0].Texcoord0
		uv1 := data.Vertices[i1].Texcoord0
		uv2 := data.Vertices[i2].Texcoord0

		e1 := p1.Sub(p0)
		e2 := p2.Sub(p0)
		du1 := uv1.X - uv0.X
		dv1 := uv1.Y - uv0.Y
		du2 := uv2.X - uv0.X
		dv2 := uv2.Y - uv0.Y

		det := du1*dv2 - du2*dv1
		if det == 0 {
			return
		}
		r := 1.0 / det
		t := e1.Scale(dv2 * r).Sub(e2.Scale(dv1 * r))
		accum[i0] = accum[i0].Add(t)
		accum[i1] = accum[i1].Add(t)
		accum[i2] = accum[i2].Add(t)
	})
	for i := range data.Vertices {
		t := accum[i]
		if t.Length() == 0 {
			data.Vertices[i].Tangent = math.NewVec4(1, 0, 0, 1)
			continue
		}
		// Gram-Schmidt against the normal.
		n := data.Vertices[i].Normal
		t = t.Sub(n.Scale(n.Dot(t))).Normalized()
		data.Vertices[i].Tangent = math.NewVec4(t.X, t.Y, t.Z, 1)
	}
}

// CalculateAABB returns the bounding box of the mesh positions. An
// empty mesh yields a zero box.
func CalculateAABB(data *metadata.MeshData) metadata.AABB {
	if data == nil || len(data.Vertices) == 0 {
		return metadata.AABB{}
	}
	box := metadata.AABB{Min: data.Vertices[0].Position, Max: data.Vertices[0].Position}
	for _, v := range data.Vertices[1:] {
		box.Min.X = math.Min(box.Min.X, v.Position.X)
		box.Min.Y = math.Min(box.Min.Y, v.Position.Y)
		box.Min.Z = math.Min(box.Min.Z, v.Position.Z)
		box.Max.X = math.Max(box.Max.X, v.Position.X)
		box.Max.Y = math.Max(box.Max.Y, v.Position.Y)
		box.Max.Z = math.Max(box.Max.Z, v.Position.Z)
	}
	return box
}

// forEachTriangle walks the index buffer three indices at a time, or
// the vertex array directly when the mesh is unindexed.
func forEachTriangle(data *metadata.MeshData, fn func(i0, i1, i2 uint32)) {
	if len(data.Indices) == 0 {
		for i := 0; i+2 < len(data.Vertices); i += 3 {
			fn(uint32(i), uint32(i+1), uint32(i+2))
		}
		return
	}
	count := int(data.IndexCount())
	for i := 0; i+2 < count; i += 3 {
		fn(indexAt(data, i), indexAt(data, i+1), indexAt(data, i+2))
	}
}

func indexAt(data *metadata.MeshData, i int) uint32 {
	if data.IndexFormat == metadata.IndexFormatUint16 {
		return uint32(binary.LittleEndian.Uint16(data.Indices[i*2:]))
	}
	return binary.LittleEndian.Uint32(data.Indices[i*4:])
}

package metadata

import "github.com/ZiedYousfi/candidengine/engine/math"

// VertexFormat is the data type of one vertex attribute.
type VertexFormat uint8

const (
	VertexFormatFloat VertexFormat = iota
	VertexFormatFloat2
	VertexFormatFloat3
	VertexFormatFloat4
	VertexFormatInt
	VertexFormatInt2
	VertexFormatInt3
	VertexFormatInt4
	VertexFormatUint
	VertexFormatUint2
	VertexFormatUint3
	VertexFormatUint4
	// VertexFormatByte4Norm is 4 bytes normalized to [0, 1].
	VertexFormatByte4Norm
	// VertexFormatByte4SNorm is 4 bytes normalized to [-1, 1].
	VertexFormatByte4SNorm
	VertexFormatShort2
	VertexFormatShort4
	VertexFormatShort2Norm
	VertexFormatShort4Norm
)

// VertexSemantic is a binding hint for a vertex attribute.
type VertexSemantic uint8

const (
	SemanticPosition VertexSemantic = iota
	SemanticNormal
	SemanticTangent
	SemanticBitangent
	SemanticTexcoord0
	SemanticTexcoord1
	SemanticColor0
	SemanticColor1
	SemanticJoints
	SemanticWeights
	SemanticCustom
)

const (
	MaxVertexAttributes = 16
	MaxVertexBuffers    = 8
	MaxSubmeshes        = 64
)

// VertexAttribute describes a single attribute within a vertex.
type VertexAttribute struct {
	Semantic VertexSemantic
	Format   VertexFormat
	// Offset in bytes within the vertex.
	Offset uint32
	// BufferIndex selects which vertex buffer the attribute reads from.
	BufferIndex uint32
}

// VertexLayout is a complete vertex stream description.
type VertexLayout struct {
	Attributes []VertexAttribute
	// Strides holds the byte stride per vertex buffer.
	Strides []uint32
}

// Vertex is the standard vertex with common attributes.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	// Tangent W carries handedness (-1 or 1).
	Tangent   math.Vec4
	Texcoord0 math.Vec2
	Texcoord1 math.Vec2
	Color     Color
}

// VertexSize is the byte size of the standard Vertex.
const VertexSize = 4 * (3 + 3 + 4 + 2 + 2 + 4)

// StandardVertexLayout returns the layout matching Vertex.
func StandardVertexLayout() VertexLayout {
	return VertexLayout{
		Attributes: []VertexAttribute{
			{Semantic: SemanticPosition, Format: VertexFormatFloat3, Offset: 0},
			{Semantic: SemanticNormal, Format: VertexFormatFloat3, Offset: 12},
			{Semantic: SemanticTangent, Format: VertexFormatFloat4, Offset: 24},
			{Semantic: SemanticTexcoord0, Format: VertexFormatFloat2, Offset: 40},
			{Semantic: SemanticTexcoord1, Format: VertexFormatFloat2, Offset: 48},
			{Semantic: SemanticColor0, Format: VertexFormatFloat4, Offset: 56},
		},
		Strides: []uint32{VertexSize},
	}
}

// AABB is an axis-aligned bounding box in min/max corner form.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// BoundingSphere is a center/radius bounding volume.
type BoundingSphere struct {
	Center math.Vec3
	Radius float32
}

// MeshData is CPU-side mesh data before upload. Indices is raw index
// bytes in IndexFormat width, so 16-bit meshes stay tightly packed.
type MeshData struct {
	Vertices    []Vertex
	Indices     []byte
	IndexFormat IndexFormat
	Layout      VertexLayout
	Topology    PrimitiveTopology
}

// IndexCount returns the number of indices encoded in Indices.
func (d *MeshData) IndexCount() uint32 {
	return uint32(uint64(len(d.Indices)) / d.IndexFormat.Size())
}

// Submesh is an index range drawn with one material.
type Submesh struct {
	IndexOffset   uint32
	IndexCount    uint32
	MaterialIndex uint32
	Bounds        AABB
}

// MeshDesc describes a mesh to create.
type MeshDesc struct {
	Data      MeshData
	Submeshes []Submesh
	Bounds    AABB
	Label     string
}

// Mesh is a backend-owned mesh handle: one vertex buffer and one index
// buffer created together, destroyed together.
type Mesh struct {
	ID           uint32
	VertexBuffer *Buffer
	IndexBuffer  *Buffer
	VertexCount  uint32
	IndexCount   uint32
	IndexFormat  IndexFormat
	Topology     PrimitiveTopology
	Submeshes    []Submesh
	Bounds       AABB
	Label        string
	Generation   uint32
	// InternalData is backend-private state.
	InternalData interface{}
}

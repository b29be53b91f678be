package math

// Vec2 represents a 2D vector.
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector.
type Vec4 struct {
	X, Y, Z, W float32
}

// Mat4 is a 4x4 matrix stored in column-major order: element (row, col)
// lives at Data[col*4+row]. This matches the layout every backend uploads
// to the GPU, so matrices can be copied into uniform buffers verbatim.
type Mat4 struct {
	Data [16]float32
}

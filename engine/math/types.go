package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

// Mat4 is a 4x4 matrix in column-major order, typically used to
// represent object transformations.
type Mat4 struct {
	Data [16]float32
}

// Vertex2D is a single vertex in 2D space, position plus texture
// coordinate. The overlay mesh is built from these.
type Vertex2D struct {
	Position Vec2
	Texcoord Vec2
}

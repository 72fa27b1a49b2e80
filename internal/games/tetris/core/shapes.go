package core

// Kind identifies one of the seven tetromino shapes.
type Kind uint8

const (
	KindI Kind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
	KindCount // Sentinel value for iteration
)

// Rotations is the number of rotation states per kind.
const Rotations = 4

// String returns the single-letter name of the kind.
func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindO:
		return "O"
	case KindT:
		return "T"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	default:
		return "?"
	}
}

// AllKinds returns every kind in catalogue order.
func AllKinds() []Kind {
	return []Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}
}

// Offset is a cell position relative to a piece anchor. DY grows upward.
type Offset struct {
	DX, DY int
}

// Shape is the footprint of one kind at one rotation.
type Shape [4]Offset

// shapeTable is indexed [kind][rotation]; rotations step 90 degrees.
// The I piece spans a 4x4 box; the other kinds sit in a
// 3x3 box with the rotation centre at (1, 0).
var shapeTable = [KindCount][Rotations]Shape{
	KindI: {
		{{0, 0}, {1, 0}, {2, 0}, {3, 0}},
		{{1, -1}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
		{{2, -1}, {2, 0}, {2, 1}, {2, 2}},
	},
	KindO: {
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
	},
	KindT: {
		{{0, 0}, {1, 0}, {2, 0}, {1, 1}},
		{{1, 1}, {1, 0}, {1, -1}, {2, 0}},
		{{0, 0}, {1, 0}, {2, 0}, {1, -1}},
		{{1, 1}, {1, 0}, {1, -1}, {0, 0}},
	},
	KindS: {
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
		{{1, 1}, {1, 0}, {2, 0}, {2, -1}},
		{{0, -1}, {1, -1}, {1, 0}, {2, 0}},
		{{0, 1}, {0, 0}, {1, 0}, {1, -1}},
	},
	KindZ: {
		{{0, 1}, {1, 1}, {1, 0}, {2, 0}},
		{{2, 1}, {2, 0}, {1, 0}, {1, -1}},
		{{0, 0}, {1, 0}, {1, -1}, {2, -1}},
		{{1, 1}, {1, 0}, {0, 0}, {0, -1}},
	},
	KindJ: {
		{{0, 1}, {0, 0}, {1, 0}, {2, 0}},
		{{1, 1}, {2, 1}, {1, 0}, {1, -1}},
		{{0, 0}, {1, 0}, {2, 0}, {2, -1}},
		{{1, 1}, {1, 0}, {0, -1}, {1, -1}},
	},
	KindL: {
		{{0, 0}, {1, 0}, {2, 0}, {2, 1}},
		{{1, 1}, {1, 0}, {1, -1}, {2, -1}},
		{{0, -1}, {0, 0}, {1, 0}, {2, 0}},
		{{0, 1}, {1, 1}, {1, 0}, {1, -1}},
	},
}

// ShapeOf returns the footprint offsets of kind at rotation.
// Rotation is taken modulo 4, negative values included. An unknown kind
// falls back to the I piece.
func ShapeOf(kind Kind, rotation int) Shape {
	r := ((rotation % Rotations) + Rotations) % Rotations
	if kind >= KindCount {
		kind = KindI
	}
	return shapeTable[kind][r]
}

package gamemap

import "fmt"

// Vector is a 1-based field position.
type Vector struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func Vec(x, y int) Vector {
	return Vector{X: x, Y: y}
}

func (v Vector) String() string {
	return fmt.Sprintf("%d,%d", v.X, v.Y)
}

// Distance is the Manhattan distance between two fields.
func (v Vector) Distance(other Vector) int {
	return abs(v.X-other.X) + abs(v.Y-other.Y)
}

// Adjacent returns the four orthogonal neighbours, up, right, down, left.
func (v Vector) Adjacent() []Vector {
	return []Vector{
		{X: v.X, Y: v.Y - 1},
		{X: v.X + 1, Y: v.Y},
		{X: v.X, Y: v.Y + 1},
		{X: v.X - 1, Y: v.Y},
	}
}

// Less orders vectors row by row.
func (v Vector) Less(other Vector) bool {
	if v.Y != other.Y {
		return v.Y < other.Y
	}
	return v.X < other.X
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

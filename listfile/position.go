package listfile

import "fmt"

// Position is a 1-based line/column location counted in characters.
type Position struct {
	Line   uint
	Column uint
}

// Before reports whether p precedes o in (line, column) order.
func (p Position) Before(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Column < o.Column
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Pos is an optional Position. The zero value carries no position.
type Pos struct {
	Position
	Valid bool
}

// NoPos is the absent position.
var NoPos = Pos{}

// At returns a present position.
func At(line, column uint) Pos {
	return Pos{Position: Position{Line: line, Column: column}, Valid: true}
}

func (p Pos) String() string {
	if !p.Valid {
		return "-"
	}
	return p.Position.String()
}

func (p Pos) shiftLine(offset int) Pos {
	if !p.Valid {
		return p
	}
	p.Line = shift(p.Line, offset)
	return p
}

func (p Pos) shiftColumn(offset int) Pos {
	if !p.Valid {
		return p
	}
	p.Column = shift(p.Column, offset)
	return p
}

func shift(value uint, offset int) uint {
	if offset < 0 && uint(-offset) > value {
		return 0
	}
	return uint(int(value) + offset)
}

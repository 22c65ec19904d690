package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lox/squares/internal/squares"
)

var cellPattern = regexp.MustCompile(`^(?:[rR](\d+)[cC](\d+)|(\d+)\s*[,:]\s*(\d+))$`)

// parseCell accepts "row,col", "row:col" or "r<row>c<col>".
func parseCell(s string) (squares.Cell, error) {
	m := cellPattern.FindStringSubmatch(s)
	if m == nil {
		return squares.Cell{}, fmt.Errorf("invalid cell %q: want row,col", s)
	}
	rowText, colText := m[1], m[2]
	if rowText == "" {
		rowText, colText = m[3], m[4]
	}
	row, _ := strconv.Atoi(rowText)
	col, _ := strconv.Atoi(colText)
	c := squares.Cell{Row: row, Col: col}
	if !c.Valid() {
		return squares.Cell{}, fmt.Errorf("cell %q: %w", s, squares.ErrInvalidCell)
	}
	return c, nil
}

func parseCells(args []string) ([]squares.Cell, error) {
	cells := make([]squares.Cell, 0, len(args))
	for _, a := range args {
		c, err := parseCell(a)
		if err != nil {
			return nil, err
		}
		cells = append(cells, c)
	}
	return cells, nil
}

// allCells lists every square in row-major order.
func allCells() []squares.Cell {
	cells := make([]squares.Cell, 0, squares.TotalCells)
	for row := 0; row < squares.GridSize; row++ {
		for col := 0; col < squares.GridSize; col++ {
			cells = append(cells, squares.Cell{Row: row, Col: col})
		}
	}
	return cells
}

func formatCells(cells []squares.Cell) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fmt.Sprintf("%d,%d", c.Row, c.Col)
	}
	return strings.Join(parts, " ")
}

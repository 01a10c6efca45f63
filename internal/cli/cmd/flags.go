package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/tiler/internal/domain/entity"
)

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma-separated numbers, got %q", n, s)
	}
	values := make([]float64, n)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", part, err)
		}
		values[i] = v
	}
	return values, nil
}

// parseRect reads "left,top,width,height".
func parseRect(s string) (entity.Rect, error) {
	v, err := parseFloats(s, 4)
	if err != nil {
		return entity.Rect{}, fmt.Errorf("rect: %w", err)
	}
	return entity.Rect{Left: v[0], Top: v[1], Width: v[2], Height: v[3]}, nil
}

// parsePoint reads "x,y".
func parsePoint(s string) (entity.Point, error) {
	v, err := parseFloats(s, 2)
	if err != nil {
		return entity.Point{}, fmt.Errorf("point: %w", err)
	}
	return entity.Point{X: v[0], Y: v[1]}, nil
}

func containerRect(width, height float64) (entity.Rect, error) {
	if width <= 0 || height <= 0 {
		return entity.Rect{}, fmt.Errorf("container size must be positive, got %gx%g", width, height)
	}
	return entity.Rect{Width: width, Height: height}, nil
}

package parser

import (
	"regexp"
	"strconv"

	"screen-agent/internal/domain/entity"
)

var integer = regexp.MustCompile(`\d+`)

// ParseBoxPoints reads every adjacent pair of integers in content as one
// (x, y). A trailing unpaired integer is ignored.
func ParseBoxPoints(content string) []entity.Point {
	nums := integer.FindAllString(content, -1)
	points := make([]entity.Point, 0, len(nums)/2)
	for i := 0; i+1 < len(nums); i += 2 {
		x, errX := strconv.ParseFloat(nums[i], 64)
		y, errY := strconv.ParseFloat(nums[i+1], 64)
		if errX != nil || errY != nil {
			continue
		}
		points = append(points, entity.Point{X: x, Y: y})
	}
	return points
}

// ParseBox resolves a box payload to a single point: the per-axis mean of
// all pairs found. Any number of pairs is averaged the same way, so for a
// two-corner box this is its center. Returns nil when no pair is present.
func ParseBox(content string) *entity.Coords {
	center, ok := entity.Mean(ParseBoxPoints(content))
	if !ok {
		return nil
	}
	return entity.NewPoint(center)
}

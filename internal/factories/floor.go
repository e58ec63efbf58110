package factories

import (
	"fmt"
	"math"

	"github.com/ckarenz/floorsim/internal/models"
	"github.com/lucsky/cuid"
)

// FloorFactory lays out the dining room: entrance in the south-west
// corner, tables on a grid over the southern half, the pass counter
// between the floor and the kitchen line along the north wall.
type FloorFactory struct{}

func (ff *FloorFactory) EntranceLocation(config *models.Config) models.Location {
	return models.Location{X: 1, Y: 1}
}

func (ff *FloorFactory) CounterLocation(config *models.Config) models.Location {
	return models.Location{X: config.FloorWidth / 2, Y: config.FloorDepth * 0.7}
}

func (ff *FloorFactory) LayoutTables(config *models.Config) []*models.Table {
	n := config.NumTables
	if n <= 0 {
		return nil
	}
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := int(math.Ceil(float64(n) / float64(cols)))

	left, right := 3.0, config.FloorWidth-3.0
	top, bottom := 3.0, config.FloorDepth*0.55

	tables := make([]*models.Table, 0, n)
	for i := 0; i < n; i++ {
		col := i % cols
		row := i / cols
		x := left
		if cols > 1 {
			x += (right - left) * float64(col) / float64(cols-1)
		}
		y := top
		if rows > 1 {
			y += (bottom - top) * float64(row) / float64(rows-1)
		}
		tables = append(tables, &models.Table{
			Number:   i + 1,
			Location: models.Location{X: x, Y: y},
		})
	}
	return tables
}

func (ff *FloorFactory) LayoutStations(config *models.Config) []*models.Station {
	specs := config.Stations
	stations := make([]*models.Station, 0, len(specs))
	for i, spec := range specs {
		x := config.FloorWidth * float64(i+1) / float64(len(specs)+1)
		loc := models.Location{X: x, Y: config.FloorDepth * 0.9}
		id := fmt.Sprintf("%s-%s", spec.Kind, cuid.Slug())
		stations = append(stations, models.NewStation(id, spec, loc))
	}
	return stations
}

// WaiterPost spreads idle waiters along the pass side of the floor.
func (ff *FloorFactory) WaiterPost(config *models.Config, i int) models.Location {
	x := config.FloorWidth * float64(i+1) / float64(config.NumWaiters+1)
	return models.Location{X: x, Y: config.FloorDepth * 0.65}
}

// ChefPost spreads idle chefs along the kitchen line.
func (ff *FloorFactory) ChefPost(config *models.Config, i int) models.Location {
	x := config.FloorWidth * float64(i+1) / float64(config.NumChefs+1)
	return models.Location{X: x, Y: config.FloorDepth * 0.85}
}

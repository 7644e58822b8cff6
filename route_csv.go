package osmnav

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

// ExportToCSV writes steps of the route to file (';' separated)
func (route *Route) ExportToCSV(fname string) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()
	return route.WriteCSV(file)
}

// WriteCSV writes steps of the route to given writer
func (route *Route) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'

	err := writer.Write([]string{"step", "node_id", "turn", "distance_meters", "distance", "way_name", "instruction", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for i, step := range route.Steps {
		err = writer.Write([]string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%d", step.Node.ID),
			step.Turn.String(),
			fmt.Sprintf("%.2f", step.Distance),
			step.DistanceLabel,
			step.WayName,
			step.Instruction(),
			PrepareWKTPoint(step.Node.GeoPoint()),
		})
		if err != nil {
			return errors.Wrapf(err, "Can't write step %d", i)
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "Can't flush steps")
}

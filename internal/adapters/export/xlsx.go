package export

import (
	"cyber-map-service/internal/domain"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const RankingSheet = "Distances"

var rankingHeader = []interface{}{
	"ID", "Name", "Address", "Latitude", "Longitude", "Distance (km)", "Nearest",
}

// WriteRankingXLSX writes the distance table as a single-sheet workbook, one
// row per ranked point in the given order. nearestRow is the index in ranked
// of the nearest point, or -1 when there is none.
func WriteRankingXLSX(w io.Writer, ranked []domain.RankedPoint, nearestRow int) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", RankingSheet); err != nil {
		return fmt.Errorf("write ranking xlsx: rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(RankingSheet)
	if err != nil {
		return fmt.Errorf("write ranking xlsx: stream writer: %w", err)
	}

	if err := sw.SetRow("A1", rankingHeader); err != nil {
		return fmt.Errorf("write ranking xlsx: header: %w", err)
	}

	for i, r := range ranked {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("write ranking xlsx: row %d: %w", i+2, err)
		}

		isNearest := ""
		if i == nearestRow {
			isNearest = "yes"
		}

		row := []interface{}{
			r.ID, r.Name, r.Address,
			r.Position.Lat, r.Position.Lon,
			r.DistanceKm, isNearest,
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("write ranking xlsx: row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("write ranking xlsx: flush: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write ranking xlsx: %w", err)
	}
	return nil
}

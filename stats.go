package main

import (
	"github.com/montanaflynn/stats"

	"github.com/maplefeline/vchess/board"
)

// mobility summarises how many tiles each active piece of one side can move to.
type mobility struct {
	Pieces     int
	Mean       float64
	Median     float64
	Max        float64
	Percentile float64
	Vision     int
}

func mobilityOf(b *board.Board, p board.Perspective) (mobility, error) {
	var counts []int
	var vision int
	for _, id := range b.Active() {
		st := b.Piece(id).State()
		if st.Perspective != p {
			continue
		}
		counts = append(counts, len(st.MovableTo))
		vision = vision + len(st.InVision)
	}
	m := mobility{Pieces: len(counts), Vision: vision}
	if len(counts) == 0 {
		return m, nil
	}
	data := stats.LoadRawData(counts)
	var err error
	if m.Mean, err = stats.Mean(data); err != nil {
		return m, err
	}
	if m.Median, err = stats.Median(data); err != nil {
		return m, err
	}
	if m.Max, err = stats.Max(data); err != nil {
		return m, err
	}
	if m.Percentile, err = stats.Percentile(data, 80); err != nil {
		return m, err
	}
	return m, nil
}

package views

import (
	"github.com/nfrund/golfjourneys/internal/bundle"
	"github.com/nfrund/golfjourneys/internal/goals"
	"github.com/nfrund/golfjourneys/internal/settings"
)

// BallsPerRow is how many golf balls fit on one row of the progress view.
const BallsPerRow = 5

// Ball is one goal drawn as a golf ball.
type Ball struct {
	Number    int  `json:"number"`
	Completed bool `json:"completed"`
}

// BallRows lays out total balls in rows of BallsPerRow, numbered from 1. The
// first completed balls are filled in.
func BallRows(total, completed int) [][]Ball {
	if total <= 0 {
		return nil
	}
	rows := make([][]Ball, 0, (total+BallsPerRow-1)/BallsPerRow)
	for start := 0; start < total; start += BallsPerRow {
		end := min(start+BallsPerRow, total)
		row := make([]Ball, 0, end-start)
		for i := start; i < end; i++ {
			row = append(row, Ball{Number: i + 1, Completed: i < completed})
		}
		rows = append(rows, row)
	}
	return rows
}

// GolfBallProgress shows one golf ball per goal, stamped with the player's name.
type GolfBallProgress struct {
	loc      *bundle.Localizer
	book     *goals.Book
	settings *settings.Store
}

// GolfBallProgressSnapshot is the rendered state of the progress view.
type GolfBallProgressSnapshot struct {
	PlayerName string   `json:"playerName"`
	Completed  int      `json:"completed"`
	Total      int      `json:"total"`
	Fraction   float64  `json:"fraction"`
	Rows       [][]Ball `json:"rows"`
	Caption    string   `json:"caption"`
}

// NewGolfBallProgress builds the golf ball grid for the current goal counts.
func NewGolfBallProgress(deps Dependencies) (*GolfBallProgress, error) {
	if err := deps.requireGoals(IDGolfBallProgress); err != nil {
		return nil, err
	}
	return &GolfBallProgress{loc: deps.localizer(), book: deps.Goals, settings: deps.Settings}, nil
}

// Identifier and Title implement View.
func (v *GolfBallProgress) Identifier() string { return IDGolfBallProgress }
func (v *GolfBallProgress) Title() string      { return v.loc.String("progress.title") }

// Snapshot returns a GolfBallProgressSnapshot.
func (v *GolfBallProgress) Snapshot() any {
	return v.snapshot()
}

func (v *GolfBallProgress) snapshot() GolfBallProgressSnapshot {
	completed, total := v.book.Counts()
	var name string
	if v.settings != nil {
		name = v.settings.Get().FirstName
	}
	return GolfBallProgressSnapshot{
		PlayerName: name,
		Completed:  completed,
		Total:      total,
		Fraction:   v.book.Progress(),
		Rows:       BallRows(total, completed),
		Caption:    v.loc.String("goals.progress", completed, total),
	}
}

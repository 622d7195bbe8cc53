package scoring

import (
	"fmt"

	"github.com/dbv-club/championship-system/models"
)

// Pontuação por cor de avaliação. Resolved once at evaluation creation;
// the stored snapshot is what counts from then on.
var colorPoints = map[models.EvaluationColor]int{
	models.ColorVerde:    50,
	models.ColorAmarelo:  30,
	models.ColorVermelho: 10,
}

// ColorPoints returns the point value earned by an evaluation of the
// given color.
func ColorPoints(color models.EvaluationColor) (int, error) {
	pts, ok := colorPoints[color]
	if !ok {
		return 0, fmt.Errorf("unknown evaluation color %q", color)
	}
	return pts, nil
}

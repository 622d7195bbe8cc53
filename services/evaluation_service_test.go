package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dbv-club/championship-system/models"
)

func newEvaluationTestService(env *rankingTestEnv, now time.Time) *evaluationService {
	return &evaluationService{
		evaluationRepo:   env.evaluations,
		championshipRepo: env.championships,
		rankingService:   env.service,
		now:              func() time.Time { return now },
	}
}

func TestCreateEvaluationDateRules(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		date    time.Time
		wantErr error
	}{
		{
			name: "within window",
			now:  time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC),
			date: time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "window opening day",
			now:  time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC),
			date: time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "window closing day",
			now:  time.Date(2025, time.December, 15, 12, 0, 0, 0, time.UTC),
			date: time.Date(2025, time.November, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "before window opens",
			now:     time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC),
			date:    time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
			wantErr: ErrDateBeforeWindow,
		},
		{
			name:    "after window closes",
			now:     time.Date(2025, time.December, 15, 12, 0, 0, 0, time.UTC),
			date:    time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC),
			wantErr: ErrDateAfterWindow,
		},
		{
			name:    "previous season",
			now:     time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC),
			date:    time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
			wantErr: ErrDateBeforeWindow,
		},
		{
			name:    "tomorrow",
			now:     time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC),
			date:    time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC),
			wantErr: ErrDateInFuture,
		},
		{
			// Time of day is ignored: later today is still today.
			name: "later today",
			now:  time.Date(2025, time.June, 15, 8, 0, 0, 0, time.UTC),
			date: time.Date(2025, time.June, 15, 22, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newRankingTestEnv(nil)
			ctx := context.Background()
			if _, err := env.service.InitializeChampionship(ctx, 1); err != nil {
				t.Fatalf("bootstrap: %v", err)
			}
			svc := newEvaluationTestService(env, tt.now)

			_, err := svc.CreateEvaluation(ctx, CreateEvaluationInput{
				ChampionshipID: 1,
				UnitID:         1,
				Date:           tt.date,
				Category:       "disciplina",
				Subtype:        "reuniao",
				Color:          models.ColorVerde,
			})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CreateEvaluation = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateEvaluation: %v", err)
			}
		})
	}
}

func TestCreateEvaluationSnapshotsPoints(t *testing.T) {
	env := newRankingTestEnv(nil)
	ctx := context.Background()
	if _, err := env.service.InitializeChampionship(ctx, 1); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	svc := newEvaluationTestService(env, time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC))

	created, err := svc.CreateEvaluation(ctx, CreateEvaluationInput{
		ChampionshipID: 1,
		UnitID:         2,
		Date:           time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
		Category:       "pontualidade",
		Subtype:        "chamada",
		Color:          models.ColorAmarelo,
	})
	if err != nil {
		t.Fatalf("CreateEvaluation: %v", err)
	}
	if created.Points != 30 {
		t.Errorf("amarelo points = %d, want 30", created.Points)
	}
	if created.ID == 0 {
		t.Error("created evaluation has no id")
	}
	if !created.Date.Equal(time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("stored date = %v, want date-only June 10", created.Date)
	}
}

func TestCreateEvaluationUnknownColor(t *testing.T) {
	env := newRankingTestEnv(nil)
	ctx := context.Background()
	if _, err := env.service.InitializeChampionship(ctx, 1); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	svc := newEvaluationTestService(env, time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC))

	_, err := svc.CreateEvaluation(ctx, CreateEvaluationInput{
		ChampionshipID: 1,
		UnitID:         1,
		Date:           time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
		Color:          "roxo",
	})
	if !errors.Is(err, ErrUnknownEvaluationColor) {
		t.Fatalf("CreateEvaluation = %v, want ErrUnknownEvaluationColor", err)
	}
}

func TestCreateEvaluationChampionshipGuards(t *testing.T) {
	env := newRankingTestEnv(nil)
	ctx := context.Background()
	env.championships.championships[2] = &models.Championship{
		ID: 2, Name: "Encerrado", Year: 2024, Status: models.ChampionshipClosed,
	}
	svc := newEvaluationTestService(env, time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC))

	input := CreateEvaluationInput{
		UnitID: 1,
		Date:   time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
		Color:  models.ColorVerde,
	}

	input.ChampionshipID = 99
	if _, err := svc.CreateEvaluation(ctx, input); !errors.Is(err, ErrChampionshipNotFound) {
		t.Errorf("unknown championship = %v, want ErrChampionshipNotFound", err)
	}

	input.ChampionshipID = 2
	if _, err := svc.CreateEvaluation(ctx, input); !errors.Is(err, ErrChampionshipNotActive) {
		t.Errorf("closed championship = %v, want ErrChampionshipNotActive", err)
	}
}

func TestCreateEvaluationSurvivesSyncFailure(t *testing.T) {
	// No bootstrap: the trailing sync fails with ErrRankingNotInitialized,
	// but the evaluation itself must be committed and returned.
	env := newRankingTestEnv(nil)
	ctx := context.Background()
	svc := newEvaluationTestService(env, time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC))

	created, err := svc.CreateEvaluation(ctx, CreateEvaluationInput{
		ChampionshipID: 1,
		UnitID:         1,
		Date:           time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
		Color:          models.ColorVerde,
	})
	if !errors.Is(err, ErrRankingSyncFailed) {
		t.Fatalf("CreateEvaluation = %v, want ErrRankingSyncFailed", err)
	}
	if !errors.Is(err, ErrRankingNotInitialized) {
		t.Errorf("wrapped cause lost: %v", err)
	}
	if created == nil || created.ID == 0 {
		t.Fatal("evaluation was not committed alongside the sync failure")
	}
	if _, getErr := env.evaluations.GetByID(ctx, created.ID); getErr != nil {
		t.Errorf("committed evaluation not readable: %v", getErr)
	}
}

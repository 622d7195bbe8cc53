package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dbv-club/championship-system/models"
)

func newDemeritTestService(env *rankingTestEnv, now time.Time) *demeritService {
	return &demeritService{
		demeritRepo:      env.demerits,
		championshipRepo: env.championships,
		rankingService:   env.service,
		now:              func() time.Time { return now },
	}
}

func strPtr(s string) *string { return &s }

func TestCreateDemeritDescriptionRules(t *testing.T) {
	tests := []struct {
		name        string
		demeritType string
		description *string
		wantErr     error
	}{
		{name: "d1 without description", demeritType: "d1_atraso_chegada"},
		{name: "d2 without description", demeritType: "d2_recusa_atividade"},
		{
			name:        "d3 without description",
			demeritType: "d3_briga_discussao",
			wantErr:     ErrDescriptionRequired,
		},
		{
			name:        "d3 with blank description",
			demeritType: "d3_briga_discussao",
			description: strPtr("   "),
			wantErr:     ErrDescriptionRequired,
		},
		{
			// A single meaningful character is enough.
			name:        "d3 with one character",
			demeritType: "d3_briga_discussao",
			description: strPtr("x"),
		},
		{
			name:        "d4 without description",
			demeritType: "d4_vandalismo",
			wantErr:     ErrDescriptionRequired,
		},
		{
			name:        "d4 with description",
			demeritType: "d4_vandalismo",
			description: strPtr("quebrou a janela do salão"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newRankingTestEnv(nil)
			ctx := context.Background()
			if _, err := env.service.InitializeChampionship(ctx, 1); err != nil {
				t.Fatalf("bootstrap: %v", err)
			}
			svc := newDemeritTestService(env, time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC))

			_, err := svc.CreateDemerit(ctx, CreateDemeritInput{
				ChampionshipID: 1,
				UnitID:         1,
				Date:           time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
				Type:           tt.demeritType,
				Description:    tt.description,
			})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CreateDemerit = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateDemerit: %v", err)
			}
		})
	}
}

func TestCreateDemeritSnapshotsRule(t *testing.T) {
	env := newRankingTestEnv(nil)
	ctx := context.Background()
	if _, err := env.service.InitializeChampionship(ctx, 1); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	svc := newDemeritTestService(env, time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC))

	created, err := svc.CreateDemerit(ctx, CreateDemeritInput{
		ChampionshipID: 1,
		UnitID:         2,
		Date:           time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
		Type:           "d2_linguagem_inadequada",
	})
	if err != nil {
		t.Fatalf("CreateDemerit: %v", err)
	}
	if created.Tier != models.TierD2 {
		t.Errorf("tier = %s, want D2", created.Tier)
	}
	if created.Points != -20 {
		t.Errorf("points = %d, want -20", created.Points)
	}

	entry, err := env.rankings.GetByChampionshipAndUnit(ctx, nil, 1, 2)
	if err != nil {
		t.Fatalf("ranking entry: %v", err)
	}
	if entry.TotalPoints != 0 {
		t.Errorf("total after lone demerit = %d, want 0 (floored)", entry.TotalPoints)
	}
}

func TestCreateDemeritUnknownType(t *testing.T) {
	env := newRankingTestEnv(nil)
	ctx := context.Background()
	if _, err := env.service.InitializeChampionship(ctx, 1); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	svc := newDemeritTestService(env, time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC))

	_, err := svc.CreateDemerit(ctx, CreateDemeritInput{
		ChampionshipID: 1,
		UnitID:         1,
		Date:           time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
		Type:           "d7_nao_existe",
	})
	if !errors.Is(err, ErrUnknownDemeritType) {
		t.Fatalf("CreateDemerit = %v, want ErrUnknownDemeritType", err)
	}
}

func TestDeleteDemeritRecomputesRanking(t *testing.T) {
	env := newRankingTestEnv(nil)
	ctx := context.Background()
	if _, err := env.service.InitializeChampionship(ctx, 1); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	svc := newDemeritTestService(env, time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC))

	env.evaluations.Create(ctx, &models.Evaluation{ChampionshipID: 1, UnitID: 1, Points: 50})
	created, err := svc.CreateDemerit(ctx, CreateDemeritInput{
		ChampionshipID: 1,
		UnitID:         1,
		Date:           time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
		Type:           "d2_dano_material_leve",
	})
	if err != nil {
		t.Fatalf("CreateDemerit: %v", err)
	}

	entry, _ := env.rankings.GetByChampionshipAndUnit(ctx, nil, 1, 1)
	if entry.TotalPoints != 30 {
		t.Fatalf("total with demerit = %d, want 30", entry.TotalPoints)
	}

	if err := svc.DeleteDemerit(ctx, created.ID); err != nil {
		t.Fatalf("DeleteDemerit: %v", err)
	}
	entry, _ = env.rankings.GetByChampionshipAndUnit(ctx, nil, 1, 1)
	if entry.TotalPoints != 50 {
		t.Errorf("total after delete = %d, want 50", entry.TotalPoints)
	}

	if err := svc.DeleteDemerit(ctx, created.ID); !errors.Is(err, ErrDemeritNotFound) {
		t.Errorf("second delete = %v, want ErrDemeritNotFound", err)
	}
}

func TestListDemeritTypes(t *testing.T) {
	env := newRankingTestEnv(nil)
	svc := newDemeritTestService(env, time.Now())

	types := svc.ListDemeritTypes()
	if len(types) != 32 {
		t.Fatalf("ListDemeritTypes returned %d rules, want 32", len(types))
	}
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dbv-club/championship-system/models"
)

func TestCreateChampionship(t *testing.T) {
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		input    CreateChampionshipInput
		wantErr  error
		wantYear int
	}{
		{
			name:     "valid",
			input:    CreateChampionshipInput{Name: "Campeonato 2025", Year: 2025, StartDate: start, EndDate: end},
			wantYear: 2025,
		},
		{
			// The season year defaults from the start date.
			name:     "year defaulted",
			input:    CreateChampionshipInput{Name: "Campeonato", StartDate: start, EndDate: end},
			wantYear: 2025,
		},
		{
			name:    "blank name",
			input:   CreateChampionshipInput{Name: "   ", StartDate: start, EndDate: end},
			wantErr: ErrChampionshipNameRequired,
		},
		{
			name:    "end before start",
			input:   CreateChampionshipInput{Name: "Campeonato", StartDate: end, EndDate: start},
			wantErr: ErrChampionshipInvalidDateRange,
		},
		{
			name:    "end equals start",
			input:   CreateChampionshipInput{Name: "Campeonato", StartDate: start, EndDate: start},
			wantErr: ErrChampionshipInvalidDateRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewChampionshipService(newFakeChampionshipRepo())
			created, err := svc.CreateChampionship(context.Background(), tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CreateChampionship = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateChampionship: %v", err)
			}
			if created.Year != tt.wantYear {
				t.Errorf("year = %d, want %d", created.Year, tt.wantYear)
			}
			if created.Status != models.ChampionshipActive {
				t.Errorf("status = %s, want active", created.Status)
			}
		})
	}
}

func TestUpdateChampionshipStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    models.ChampionshipStatus
		to      models.ChampionshipStatus
		wantErr error
	}{
		{name: "active to suspended", from: models.ChampionshipActive, to: models.ChampionshipSuspended},
		{name: "active to closed", from: models.ChampionshipActive, to: models.ChampionshipClosed},
		{name: "suspended to active", from: models.ChampionshipSuspended, to: models.ChampionshipActive},
		{name: "suspended to closed", from: models.ChampionshipSuspended, to: models.ChampionshipClosed},
		{
			// Closed is terminal.
			name:    "closed to active",
			from:    models.ChampionshipClosed,
			to:      models.ChampionshipActive,
			wantErr: ErrChampionshipInvalidStatusChange,
		},
		{
			name:    "active to active",
			from:    models.ChampionshipActive,
			to:      models.ChampionshipActive,
			wantErr: ErrChampionshipInvalidStatusChange,
		},
		{
			name:    "unknown status",
			from:    models.ChampionshipActive,
			to:      "archived",
			wantErr: ErrChampionshipInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeChampionshipRepo(&models.Championship{ID: 1, Name: "C", Year: 2025, Status: tt.from})
			svc := NewChampionshipService(repo)

			updated, err := svc.UpdateStatus(context.Background(), 1, tt.to)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("UpdateStatus = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("UpdateStatus: %v", err)
			}
			if updated.Status != tt.to {
				t.Errorf("status = %s, want %s", updated.Status, tt.to)
			}
		})
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	svc := NewChampionshipService(newFakeChampionshipRepo())
	if _, err := svc.UpdateStatus(context.Background(), 7, models.ChampionshipClosed); !errors.Is(err, ErrChampionshipNotFound) {
		t.Fatalf("UpdateStatus(7) = %v, want ErrChampionshipNotFound", err)
	}
}

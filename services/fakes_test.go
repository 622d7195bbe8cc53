package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dbv-club/championship-system/models"
	"github.com/dbv-club/championship-system/repositories"
)

// In-memory repository fakes. They reproduce only the behavior the
// services rely on: keyed storage, not-found sentinels, bulk listing.

type fakeChampionshipRepo struct {
	championships map[int]*models.Championship
}

func newFakeChampionshipRepo(championships ...*models.Championship) *fakeChampionshipRepo {
	r := &fakeChampionshipRepo{championships: make(map[int]*models.Championship)}
	for _, c := range championships {
		r.championships[c.ID] = c
	}
	return r
}

func (r *fakeChampionshipRepo) Create(ctx context.Context, c *models.Championship) error {
	c.ID = len(r.championships) + 1
	r.championships[c.ID] = c
	return nil
}

func (r *fakeChampionshipRepo) GetByID(ctx context.Context, id int) (*models.Championship, error) {
	c, ok := r.championships[id]
	if !ok {
		return nil, repositories.ErrChampionshipNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeChampionshipRepo) List(ctx context.Context) ([]models.Championship, error) {
	out := make([]models.Championship, 0, len(r.championships))
	for _, c := range r.championships {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeChampionshipRepo) UpdateStatus(ctx context.Context, id int, status models.ChampionshipStatus) error {
	c, ok := r.championships[id]
	if !ok {
		return repositories.ErrChampionshipNotFound
	}
	c.Status = status
	return nil
}

type fakeUnitRepo struct {
	units  map[int]*models.Unit
	nextID int
}

func newFakeUnitRepo(units ...*models.Unit) *fakeUnitRepo {
	r := &fakeUnitRepo{units: make(map[int]*models.Unit), nextID: 1}
	for _, u := range units {
		r.units[u.ID] = u
		if u.ID >= r.nextID {
			r.nextID = u.ID + 1
		}
	}
	return r
}

func (r *fakeUnitRepo) Create(ctx context.Context, u *models.Unit) error {
	u.ID = r.nextID
	r.nextID++
	r.units[u.ID] = u
	return nil
}

func (r *fakeUnitRepo) GetByID(ctx context.Context, id int) (*models.Unit, error) {
	u, ok := r.units[id]
	if !ok {
		return nil, repositories.ErrUnitNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUnitRepo) ListActive(ctx context.Context) ([]models.Unit, error) {
	out := make([]models.Unit, 0, len(r.units))
	for _, u := range r.units {
		if u.Active {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUnitRepo) ListByIDs(ctx context.Context, ids []int) ([]models.Unit, error) {
	out := make([]models.Unit, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.units[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUnitRepo) Update(ctx context.Context, u *models.Unit) error {
	if _, ok := r.units[u.ID]; !ok {
		return repositories.ErrUnitNotFound
	}
	r.units[u.ID] = u
	return nil
}

func (r *fakeUnitRepo) UpdateEmblemKey(ctx context.Context, id int, emblemKey *string) error {
	u, ok := r.units[id]
	if !ok {
		return repositories.ErrUnitNotFound
	}
	u.EmblemKey = emblemKey
	return nil
}

type fakeUserRepo struct {
	users  map[int]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int]*models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	u.ID = r.nextID
	r.nextID++
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

type fakeEvaluationRepo struct {
	evaluations map[int]*models.Evaluation
	nextID      int
}

func newFakeEvaluationRepo() *fakeEvaluationRepo {
	return &fakeEvaluationRepo{evaluations: make(map[int]*models.Evaluation), nextID: 1}
}

func (r *fakeEvaluationRepo) Create(ctx context.Context, e *models.Evaluation) error {
	e.ID = r.nextID
	r.nextID++
	copied := *e
	r.evaluations[e.ID] = &copied
	return nil
}

func (r *fakeEvaluationRepo) GetByID(ctx context.Context, id int) (*models.Evaluation, error) {
	e, ok := r.evaluations[id]
	if !ok {
		return nil, repositories.ErrEvaluationNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *fakeEvaluationRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.evaluations[id]; !ok {
		return repositories.ErrEvaluationNotFound
	}
	delete(r.evaluations, id)
	return nil
}

func (r *fakeEvaluationRepo) ListByChampionship(ctx context.Context, championshipID int) ([]models.Evaluation, error) {
	out := make([]models.Evaluation, 0)
	for _, e := range r.evaluations {
		if e.ChampionshipID == championshipID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEvaluationRepo) ListByUnitAndDate(ctx context.Context, championshipID, unitID int, date time.Time) ([]models.Evaluation, error) {
	out := make([]models.Evaluation, 0)
	for _, e := range r.evaluations {
		if e.ChampionshipID == championshipID && e.UnitID == unitID && e.Date.Equal(date) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEvaluationRepo) ListByUnitSince(ctx context.Context, championshipID, unitID int, from time.Time) ([]models.Evaluation, error) {
	out := make([]models.Evaluation, 0)
	for _, e := range r.evaluations {
		if e.ChampionshipID == championshipID && e.UnitID == unitID && !e.Date.Before(from) {
			out = append(out, *e)
		}
	}
	return out, nil
}

type fakeDemeritRepo struct {
	demerits map[int]*models.Demerit
	nextID   int
}

func newFakeDemeritRepo() *fakeDemeritRepo {
	return &fakeDemeritRepo{demerits: make(map[int]*models.Demerit), nextID: 1}
}

func (r *fakeDemeritRepo) Create(ctx context.Context, d *models.Demerit) error {
	d.ID = r.nextID
	r.nextID++
	copied := *d
	r.demerits[d.ID] = &copied
	return nil
}

func (r *fakeDemeritRepo) GetByID(ctx context.Context, id int) (*models.Demerit, error) {
	d, ok := r.demerits[id]
	if !ok {
		return nil, repositories.ErrDemeritNotFound
	}
	copied := *d
	return &copied, nil
}

func (r *fakeDemeritRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.demerits[id]; !ok {
		return repositories.ErrDemeritNotFound
	}
	delete(r.demerits, id)
	return nil
}

func (r *fakeDemeritRepo) ListByChampionship(ctx context.Context, championshipID int) ([]models.Demerit, error) {
	out := make([]models.Demerit, 0)
	for _, d := range r.demerits {
		if d.ChampionshipID == championshipID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDemeritRepo) ListByUnitAndDate(ctx context.Context, championshipID, unitID int, date time.Time) ([]models.Demerit, error) {
	out := make([]models.Demerit, 0)
	for _, d := range r.demerits {
		if d.ChampionshipID == championshipID && d.UnitID == unitID && d.Date.Equal(date) {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDemeritRepo) ListByUnitSince(ctx context.Context, championshipID, unitID int, from time.Time) ([]models.Demerit, error) {
	out := make([]models.Demerit, 0)
	for _, d := range r.demerits {
		if d.ChampionshipID == championshipID && d.UnitID == unitID && !d.Date.Before(from) {
			out = append(out, *d)
		}
	}
	return out, nil
}

type fakeClassProgressRepo struct {
	progress map[string]*models.ClassProgress
	nextID   int
}

func newFakeClassProgressRepo() *fakeClassProgressRepo {
	return &fakeClassProgressRepo{progress: make(map[string]*models.ClassProgress), nextID: 1}
}

func progressKey(championshipID, unitID int) string {
	return fmt.Sprintf("%d:%d", championshipID, unitID)
}

func (r *fakeClassProgressRepo) GetByChampionshipAndUnit(ctx context.Context, championshipID, unitID int) (*models.ClassProgress, error) {
	p, ok := r.progress[progressKey(championshipID, unitID)]
	if !ok {
		return nil, repositories.ErrClassProgressNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeClassProgressRepo) GetOrCreate(ctx context.Context, championshipID, unitID int) (*models.ClassProgress, error) {
	if p, err := r.GetByChampionshipAndUnit(ctx, championshipID, unitID); err == nil {
		return p, nil
	}
	fresh := &models.ClassProgress{ChampionshipID: championshipID, UnitID: unitID}
	if err := r.Upsert(ctx, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

func (r *fakeClassProgressRepo) Upsert(ctx context.Context, p *models.ClassProgress) error {
	key := progressKey(p.ChampionshipID, p.UnitID)
	if existing, ok := r.progress[key]; ok {
		p.ID = existing.ID
	} else {
		p.ID = r.nextID
		r.nextID++
	}
	p.UpdatedAt = time.Now()
	copied := *p
	r.progress[key] = &copied
	return nil
}

func (r *fakeClassProgressRepo) BatchCreate(ctx context.Context, progress []*models.ClassProgress) (int, error) {
	created := 0
	for _, p := range progress {
		key := progressKey(p.ChampionshipID, p.UnitID)
		if _, ok := r.progress[key]; ok {
			continue
		}
		p.ID = r.nextID
		r.nextID++
		copied := *p
		r.progress[key] = &copied
		created++
	}
	return created, nil
}

func (r *fakeClassProgressRepo) ListByChampionship(ctx context.Context, championshipID int) ([]models.ClassProgress, error) {
	out := make([]models.ClassProgress, 0)
	for _, p := range r.progress {
		if p.ChampionshipID == championshipID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeRankingRepo struct {
	entries map[string]*models.RankingEntry
	units   *fakeUnitRepo
	nextID  int

	// failUpdateFor simulates per-unit persistence failures.
	failUpdateFor map[int]error
	// failBatchCreate makes the next BatchCreate fail without creating rows.
	failBatchCreate error
}

func newFakeRankingRepo(units *fakeUnitRepo) *fakeRankingRepo {
	return &fakeRankingRepo{
		entries:       make(map[string]*models.RankingEntry),
		units:         units,
		nextID:        1,
		failUpdateFor: make(map[int]error),
	}
}

func entryKey(championshipID, unitID int) string {
	return fmt.Sprintf("%d:%d", championshipID, unitID)
}

func (r *fakeRankingRepo) Create(ctx context.Context, exec repositories.SQLExecutor, e *models.RankingEntry) error {
	e.ID = r.nextID
	r.nextID++
	copied := *e
	r.entries[entryKey(e.ChampionshipID, e.UnitID)] = &copied
	return nil
}

func (r *fakeRankingRepo) BatchCreate(ctx context.Context, exec repositories.SQLExecutor, entries []*models.RankingEntry) (int, error) {
	if r.failBatchCreate != nil {
		return 0, r.failBatchCreate
	}
	created := 0
	for _, e := range entries {
		key := entryKey(e.ChampionshipID, e.UnitID)
		if _, ok := r.entries[key]; ok {
			continue
		}
		e.ID = r.nextID
		r.nextID++
		copied := *e
		r.entries[key] = &copied
		created++
	}
	return created, nil
}

func (r *fakeRankingRepo) GetByChampionshipAndUnit(ctx context.Context, exec repositories.SQLExecutor, championshipID, unitID int) (*models.RankingEntry, error) {
	e, ok := r.entries[entryKey(championshipID, unitID)]
	if !ok {
		return nil, repositories.ErrRankingEntryNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *fakeRankingRepo) ListByChampionship(ctx context.Context, exec repositories.SQLExecutor, championshipID int) ([]*models.RankingEntry, error) {
	out := make([]*models.RankingEntry, 0)
	for _, e := range r.entries {
		if e.ChampionshipID == championshipID {
			copied := *e
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UnitID < out[j].UnitID })
	return out, nil
}

func (r *fakeRankingRepo) UpdateScore(ctx context.Context, exec repositories.SQLExecutor, championshipID, unitID, totalPoints, position int) error {
	if err, ok := r.failUpdateFor[unitID]; ok {
		return err
	}
	e, ok := r.entries[entryKey(championshipID, unitID)]
	if !ok {
		return repositories.ErrRankingEntryNotFound
	}
	e.TotalPoints = totalPoints
	e.Position = position
	e.UpdatedAt = time.Now()
	return nil
}

func (r *fakeRankingRepo) ListLeaderboard(ctx context.Context, exec repositories.SQLExecutor, championshipID int, nameFilter string) ([]models.LeaderboardRow, error) {
	entries, _ := r.ListByChampionship(ctx, exec, championshipID)
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].UnitID < entries[j].UnitID
	})

	board := make([]models.LeaderboardRow, 0, len(entries))
	for _, e := range entries {
		name, color := "", ""
		if r.units != nil {
			if u, err := r.units.GetByID(ctx, e.UnitID); err == nil {
				name, color = u.Name, u.Color
			}
		}
		if nameFilter != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(nameFilter)) {
			continue
		}
		board = append(board, models.LeaderboardRow{
			Position:    e.Position,
			UnitID:      e.UnitID,
			UnitName:    name,
			UnitColor:   color,
			TotalPoints: e.TotalPoints,
		})
	}
	return board, nil
}

func (r *fakeRankingRepo) LastSyncedAt(ctx context.Context, exec repositories.SQLExecutor, championshipID int) (*time.Time, error) {
	var last *time.Time
	for _, e := range r.entries {
		if e.ChampionshipID != championshipID {
			continue
		}
		t := e.UpdatedAt
		if last == nil || t.After(*last) {
			last = &t
		}
	}
	return last, nil
}

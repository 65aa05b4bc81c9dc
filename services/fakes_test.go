package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/campstack/camp-system/cache"
	"github.com/campstack/camp-system/models"
	"github.com/campstack/camp-system/repositories"
	"github.com/campstack/camp-system/storage"
)

// In-memory repository fakes. They mirror the constraint behavior of the
// postgres implementations, including the unique indexes the services lean on.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeMatchRepo struct {
	mu      sync.Mutex
	nextID  int
	matches []*models.Match
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{}
}

func samePairing(m *models.Match, sport models.Sport, a, b models.Team) bool {
	if m.Sport != sport {
		return false
	}
	return (m.TeamA == a && m.TeamB == b) || (m.TeamA == b && m.TeamB == a)
}

func (r *fakeMatchRepo) conflictLocked(match *models.Match) bool {
	for _, existing := range r.matches {
		if match.IsFinal {
			if existing.IsFinal && existing.Sport == match.Sport {
				return true
			}
			continue
		}
		if !existing.IsFinal && samePairing(existing, match.Sport, match.TeamA, match.TeamB) {
			return true
		}
	}
	return false
}

func (r *fakeMatchRepo) insertLocked(match *models.Match) {
	r.nextID++
	match.ID = r.nextID
	match.CreatedAt = time.Now()
	stored := *match
	r.matches = append(r.matches, &stored)
}

func (r *fakeMatchRepo) Create(_ context.Context, match *models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conflictLocked(match) {
		return repositories.ErrFixtureConflict
	}
	r.insertLocked(match)
	return nil
}

func (r *fakeMatchRepo) CreateAll(_ context.Context, matches []*models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, match := range matches {
		if r.conflictLocked(match) {
			return repositories.ErrFixtureConflict
		}
	}
	for _, match := range matches {
		r.insertLocked(match)
	}
	return nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id int) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, match := range r.matches {
		if match.ID == id {
			copied := *match
			return &copied, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) ListBySport(_ context.Context, sport models.Sport, status *models.MatchStatus) ([]*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*models.Match, 0)
	for _, match := range r.matches {
		if match.Sport != sport {
			continue
		}
		if status != nil && match.Status != *status {
			continue
		}
		copied := *match
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeMatchRepo) CountBySport(_ context.Context, sport models.Sport) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, match := range r.matches {
		if match.Sport == sport {
			count++
		}
	}
	return count, nil
}

func (r *fakeMatchRepo) CountByStatus(_ context.Context, status models.MatchStatus) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, match := range r.matches {
		if match.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *fakeMatchRepo) UpdateScore(_ context.Context, id int, scoreA, scoreB *int, status models.MatchStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, match := range r.matches {
		if match.ID == id {
			match.ScoreA = scoreA
			match.ScoreB = scoreB
			match.Status = status
			return nil
		}
	}
	return repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) HasFinal(_ context.Context, sport models.Sport) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, match := range r.matches {
		if match.IsFinal && match.Sport == sport {
			return true, nil
		}
	}
	return false, nil
}

type fakeEntryRepo struct {
	mu      sync.Mutex
	nextID  int
	entries []*models.SportEntry
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{}
}

func (r *fakeEntryRepo) Create(_ context.Context, entry *models.SportEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.entries {
		if existing.UserID == entry.UserID && existing.Sport == entry.Sport {
			return repositories.ErrEntryConflict
		}
	}
	r.nextID++
	entry.ID = r.nextID
	entry.CreatedAt = time.Now()
	stored := *entry
	r.entries = append(r.entries, &stored)
	return nil
}

func (r *fakeEntryRepo) Exists(_ context.Context, userID int, sport models.Sport) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.entries {
		if existing.UserID == userID && existing.Sport == sport {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeEntryRepo) ListBySport(_ context.Context, sport models.Sport) ([]*models.SportEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*models.SportEntry, 0)
	for _, existing := range r.entries {
		if existing.Sport == sport {
			copied := *existing
			result = append(result, &copied)
		}
	}
	return result, nil
}

type fakeRegRepo struct {
	mu            sync.Mutex
	nextID        int
	regs          map[int]*models.Registration
	balancesCalls int
}

func newFakeRegRepo() *fakeRegRepo {
	return &fakeRegRepo{regs: make(map[int]*models.Registration)}
}

func (r *fakeRegRepo) add(userID int, team models.Team, gender models.Gender, switches int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.regs[userID] = &models.Registration{
		ID:                r.nextID,
		UserID:            userID,
		Team:              team,
		Gender:            gender,
		SwitchesRemaining: switches,
		IsParticipating:   true,
	}
}

// seedTeam registers count members of the given gender onto team, allocating
// user IDs from startID upward. Returns the next free user ID.
func (r *fakeRegRepo) seedTeam(team models.Team, gender models.Gender, startID, count int) int {
	for i := 0; i < count; i++ {
		r.add(startID+i, team, gender, 2)
	}
	return startID + count
}

func (r *fakeRegRepo) Create(_ context.Context, reg *models.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.regs[reg.UserID]; exists {
		return repositories.ErrRegistrationConflict
	}
	r.nextID++
	reg.ID = r.nextID
	stored := *reg
	r.regs[reg.UserID] = &stored
	return nil
}

func (r *fakeRegRepo) GetByUserID(_ context.Context, userID int) (*models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.regs[userID]
	if !ok {
		return nil, repositories.ErrRegistrationNotFound
	}
	copied := *reg
	return &copied, nil
}

func (r *fakeRegRepo) UpdateTeamAndDecrement(_ context.Context, userID int, team models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.regs[userID]
	if !ok || reg.SwitchesRemaining <= 0 {
		return repositories.ErrRegistrationNotFound
	}
	reg.Team = team
	reg.SwitchesRemaining--
	reg.UpdatedAt = time.Now()
	return nil
}

func (r *fakeRegRepo) UpdateTeam(_ context.Context, userID int, team models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.regs[userID]
	if !ok {
		return repositories.ErrRegistrationNotFound
	}
	reg.Team = team
	reg.UpdatedAt = time.Now()
	return nil
}

func (r *fakeRegRepo) TeamBalances(_ context.Context) (map[models.Team]models.TeamBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.balancesCalls++
	balances := make(map[models.Team]models.TeamBalance, 4)
	for _, team := range models.AllTeams() {
		balances[team] = models.TeamBalance{Team: team}
	}
	for _, reg := range r.regs {
		if !reg.IsParticipating {
			continue
		}
		b := balances[reg.Team]
		b.Total++
		switch reg.Gender {
		case models.GenderMale:
			b.Male++
		case models.GenderFemale:
			b.Female++
		}
		balances[reg.Team] = b
	}
	return balances, nil
}

func (r *fakeRegRepo) CountParticipating(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, reg := range r.regs {
		if reg.IsParticipating {
			count++
		}
	}
	return count, nil
}

type fakeCache struct {
	mu      sync.Mutex
	values  map[string]string
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.values[key]
	if !ok {
		return "", cache.ErrMiss
	}
	return value, nil
}

func (c *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	c.deletes++
	return nil
}

type fakeCheckinRepo struct {
	mu         sync.Mutex
	nextID     int
	sessions   map[int]*models.CheckinSession
	attendance []*models.Attendance
}

func newFakeCheckinRepo() *fakeCheckinRepo {
	return &fakeCheckinRepo{sessions: make(map[int]*models.CheckinSession)}
}

func (r *fakeCheckinRepo) CreateSession(_ context.Context, session *models.CheckinSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	session.ID = r.nextID
	session.CreatedAt = time.Now()
	stored := *session
	r.sessions[session.ID] = &stored
	return nil
}

func (r *fakeCheckinRepo) GetSessionByToken(_ context.Context, token string) (*models.CheckinSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, session := range r.sessions {
		if session.Token == token {
			copied := *session
			return &copied, nil
		}
	}
	return nil, repositories.ErrSessionNotFound
}

func (r *fakeCheckinRepo) GetSessionByID(_ context.Context, id int) (*models.CheckinSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, repositories.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (r *fakeCheckinRepo) CloseSession(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return repositories.ErrSessionNotFound
	}
	session.Active = false
	return nil
}

func (r *fakeCheckinRepo) CreateAttendance(_ context.Context, att *models.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.attendance {
		if existing.SessionID == att.SessionID && existing.UserID == att.UserID {
			return repositories.ErrAttendanceConflict
		}
	}
	r.nextID++
	att.ID = r.nextID
	att.CheckedInAt = time.Now()
	stored := *att
	r.attendance = append(r.attendance, &stored)
	return nil
}

func (r *fakeCheckinRepo) GetAttendance(_ context.Context, sessionID, userID int) (*models.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.attendance {
		if existing.SessionID == sessionID && existing.UserID == userID {
			copied := *existing
			return &copied, nil
		}
	}
	return nil, repositories.ErrSessionNotFound
}

func (r *fakeCheckinRepo) ListAttendance(_ context.Context, sessionID int) ([]*models.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*models.Attendance, 0)
	for _, existing := range r.attendance {
		if existing.SessionID == sessionID {
			copied := *existing
			result = append(result, &copied)
		}
	}
	return result, nil
}

type fakePhotoRepo struct {
	mu     sync.Mutex
	nextID int
	photos map[int]*models.Photo
}

func newFakePhotoRepo() *fakePhotoRepo {
	return &fakePhotoRepo{photos: make(map[int]*models.Photo)}
}

func (r *fakePhotoRepo) Create(_ context.Context, photo *models.Photo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	photo.ID = r.nextID
	photo.CreatedAt = time.Now()
	stored := *photo
	r.photos[photo.ID] = &stored
	return nil
}

func (r *fakePhotoRepo) GetByID(_ context.Context, id int) (*models.Photo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	photo, ok := r.photos[id]
	if !ok {
		return nil, repositories.ErrPhotoNotFound
	}
	copied := *photo
	return &copied, nil
}

func (r *fakePhotoRepo) UpdateStatus(_ context.Context, id int, status models.PhotoStatus, reviewerID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	photo, ok := r.photos[id]
	if !ok {
		return repositories.ErrPhotoNotFound
	}
	photo.Status = status
	photo.ReviewedBy = &reviewerID
	return nil
}

func (r *fakePhotoRepo) ListByStatus(_ context.Context, status models.PhotoStatus) ([]*models.Photo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*models.Photo, 0)
	for _, photo := range r.photos {
		if photo.Status == status {
			copied := *photo
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakePhotoRepo) CountByStatus(_ context.Context, status models.PhotoStatus) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, photo := range r.photos {
		if photo.Status == status {
			count++
		}
	}
	return count, nil
}

type fakeUploader struct {
	mu       sync.Mutex
	uploaded map[string]string
	deleted  []string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{uploaded: make(map[string]string)}
}

func (u *fakeUploader) Upload(_ context.Context, key, contentType string, _ io.Reader) (*storage.UploadResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.uploaded[key] = contentType
	return &storage.UploadResult{Key: key}, nil
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.deleted = append(u.deleted, key)
	delete(u.uploaded, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.example.test/" + key
}

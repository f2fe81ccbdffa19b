package services

import (
	"context"
	"strings"
	"sync"

	"cozyconnect_server/apperror"
	"cozyconnect_server/models"
)

// memProfileStore is an in-memory ProfileStore.
type memProfileStore struct {
	mu       sync.Mutex
	profiles map[string]models.Profile
	failWith error
}

func newMemProfileStore(profiles ...models.Profile) *memProfileStore {
	s := &memProfileStore{profiles: make(map[string]models.Profile)}
	for _, p := range profiles {
		s.profiles[p.ID] = p
	}
	return s
}

func (s *memProfileStore) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	p, ok := s.profiles[id]
	if !ok {
		return nil, apperror.NewNotFound("profile", id)
	}
	return &p, nil
}

func (s *memProfileStore) GetByLinkedEmail(ctx context.Context, email string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	for _, p := range s.profiles {
		if p.LinkedEmail == email {
			out := p
			return &out, nil
		}
	}
	return nil, apperror.NewNotFound("profile", email)
}

func (s *memProfileStore) GetByName(ctx context.Context, name string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		if p.Name == name {
			out := p
			return &out, nil
		}
	}
	return nil, apperror.NewNotFound("profile", name)
}

func (s *memProfileStore) GetByIDs(ctx context.Context, ids []string) ([]models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Profile
	for _, id := range ids {
		if p, ok := s.profiles[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memProfileStore) List(ctx context.Context) ([]models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	out := make([]models.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (s *memProfileStore) Put(ctx context.Context, profile models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.profiles[profile.ID] = profile
	return nil
}

func (s *memProfileStore) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, apperror.NewNotFound("profile", id)
	}
	for field, value := range fields {
		str, _ := value.(string)
		switch field {
		case "name":
			p.Name = str
		case "shortIntro":
			p.ShortIntro = str
		case "companyTitle":
			p.CompanyTitle = str
		case "lookingFor":
			p.LookingFor = str
		case "linkedEmail":
			p.LinkedEmail = str
		case "verificationCode":
			p.VerificationCode = str
		}
	}
	s.profiles[id] = p
	out := p
	return &out, nil
}

// memMatchStore is an in-memory MatchStore.
type memMatchStore struct {
	mu      sync.Mutex
	matches map[string]models.Match
	creates int
}

func newMemMatchStore(matches ...models.Match) *memMatchStore {
	s := &memMatchStore{matches: make(map[string]models.Match)}
	for _, m := range matches {
		s.matches[m.MatchID] = m
	}
	return s
}

func (s *memMatchStore) GetByID(ctx context.Context, matchID string) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.matches[matchID]
	if !ok {
		return nil, apperror.NewNotFound("match", matchID)
	}
	return &m, nil
}

func (s *memMatchStore) FindByPair(ctx context.Context, a, b string) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.matches {
		if (m.SwiperID == a && m.SwipedID == b) || (m.SwiperID == b && m.SwipedID == a) {
			out := m
			return &out, nil
		}
	}
	return nil, apperror.NewNotFound("match", a+"/"+b)
}

func (s *memMatchStore) Create(ctx context.Context, match models.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	s.matches[match.MatchID] = match
	return nil
}

func (s *memMatchStore) UpdateStatus(ctx context.Context, matchID, status string) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.matches[matchID]
	if !ok {
		return nil, apperror.NewNotFound("match", matchID)
	}
	m.Status = status
	s.matches[matchID] = m
	out := m
	return &out, nil
}

func (s *memMatchStore) Delete(ctx context.Context, matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.matches, matchID)
	return nil
}

func (s *memMatchStore) ListForProfile(ctx context.Context, profileID string) ([]models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Match
	for _, m := range s.matches {
		if m.HasParty(profileID) {
			out = append(out, m)
		}
	}
	return out, nil
}

// recordingEmailSender captures sent verification codes.
type recordingEmailSender struct {
	to    []string
	codes []string
}

func (r *recordingEmailSender) SendVerificationCode(ctx context.Context, to, profileName, code string) error {
	r.to = append(r.to, to)
	r.codes = append(r.codes, code)
	return nil
}

// testProfile builds a minimal valid profile record.
func testProfile(id, name, linkedEmail string) models.Profile {
	return models.Profile{
		ID:          id,
		Name:        name,
		ShortIntro:  "hello, I am " + strings.ToLower(name),
		LinkedEmail: linkedEmail,
		Categories:  []string{"Engineering"},
		LookingFor:  "collaborators",
		CanOffer:    "code reviews",
	}
}

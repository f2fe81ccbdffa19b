package controllers

import (
	"context"
	"sync"

	"cozyconnect_server/apperror"
	"cozyconnect_server/models"
)

// stubProfileStore is a minimal in-memory ProfileStore for handler
// tests.
type stubProfileStore struct {
	mu       sync.Mutex
	profiles map[string]models.Profile
}

func newStubProfileStore(profiles ...models.Profile) *stubProfileStore {
	s := &stubProfileStore{profiles: make(map[string]models.Profile)}
	for _, p := range profiles {
		s.profiles[p.ID] = p
	}
	return s
}

func (s *stubProfileStore) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, apperror.NewNotFound("profile", id)
	}
	return &p, nil
}

func (s *stubProfileStore) GetByLinkedEmail(ctx context.Context, email string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		if p.LinkedEmail == email {
			out := p
			return &out, nil
		}
	}
	return nil, apperror.NewNotFound("profile", email)
}

func (s *stubProfileStore) GetByName(ctx context.Context, name string) (*models.Profile, error) {
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

func (s *stubProfileStore) GetByIDs(ctx context.Context, ids []string) ([]models.Profile, error) {
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

func (s *stubProfileStore) List(ctx context.Context) ([]models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubProfileStore) Put(ctx context.Context, profile models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.ID] = profile
	return nil
}

func (s *stubProfileStore) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, apperror.NewNotFound("profile", id)
	}
	for field, value := range fields {
		str, _ := value.(string)
		switch field {
		case "companyTitle":
			p.CompanyTitle = str
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

// stubMatchStore is a minimal in-memory MatchStore for handler tests.
type stubMatchStore struct {
	mu      sync.Mutex
	matches map[string]models.Match
}

func newStubMatchStore(matches ...models.Match) *stubMatchStore {
	s := &stubMatchStore{matches: make(map[string]models.Match)}
	for _, m := range matches {
		s.matches[m.MatchID] = m
	}
	return s
}

func (s *stubMatchStore) GetByID(ctx context.Context, matchID string) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.matches[matchID]
	if !ok {
		return nil, apperror.NewNotFound("match", matchID)
	}
	return &m, nil
}

func (s *stubMatchStore) FindByPair(ctx context.Context, a, b string) (*models.Match, error) {
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

func (s *stubMatchStore) Create(ctx context.Context, match models.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[match.MatchID] = match
	return nil
}

func (s *stubMatchStore) UpdateStatus(ctx context.Context, matchID, status string) (*models.Match, error) {
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

func (s *stubMatchStore) Delete(ctx context.Context, matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.matches, matchID)
	return nil
}

func (s *stubMatchStore) ListForProfile(ctx context.Context, profileID string) ([]models.Match, error) {
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

func stubProfile(id, name, linkedEmail string) models.Profile {
	return models.Profile{
		ID:          id,
		Name:        name,
		ShortIntro:  "short intro",
		LinkedEmail: linkedEmail,
		Categories:  []string{"Engineering"},
		LookingFor:  "collaborators",
		CanOffer:    "code reviews",
	}
}

package services

import (
	"errors"
	"log"
	"strings"

	"blogfront/app/repositories"
)

// SettingsService resolves the API base URL a browser works against.
type SettingsService struct {
	repo           repositories.SettingsRepository
	defaultBaseURL string
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(repo repositories.SettingsRepository, defaultBaseURL string) *SettingsService {
	return &SettingsService{
		repo:           repo,
		defaultBaseURL: strings.TrimRight(strings.TrimSpace(defaultBaseURL), "/"),
	}
}

// BaseURL returns the base URL to prefill for a browser and whether it was
// stored by that browser. Only a stored URL triggers an automatic load.
func (s *SettingsService) BaseURL(clientID string) (string, bool) {
	if clientID != "" {
		baseURL, err := s.repo.GetBaseURL(clientID)
		if err == nil && baseURL != "" {
			return baseURL, true
		}
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			log.Printf("Error: failed to read stored base url: %v", err)
		}
	}
	return s.defaultBaseURL, false
}

// Remember stores the base URL for a browser.
func (s *SettingsService) Remember(clientID, baseURL string) error {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if clientID == "" || baseURL == "" {
		return nil
	}
	if stored, err := s.repo.GetBaseURL(clientID); err == nil && stored == baseURL {
		return nil
	}
	if err := s.repo.SaveBaseURL(clientID, baseURL); err != nil {
		log.Printf("Error: failed to store base url: %v", err)
		return err
	}
	return nil
}
